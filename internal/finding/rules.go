// Copyright 2026 The CloudSentinel Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package finding

import (
	"fmt"
	"strings"

	"github.com/cloudsentinel/cloudsentinel/internal/asset"
)

// Draft is a finding before the engine stamps identity, tenant, asset and
// status onto it. Severity and message are rule-intrinsic constants.
type Draft struct {
	Severity    Severity
	Title       string
	Description string
}

// Rule is a pure predicate over a single asset. Evaluate returns nil when
// the asset passes, or a Draft describing the violation. Rules must not
// hold cross-asset state: each asset is judged in isolation, so a single
// asset may match zero, one, or all rules in the same run.
type Rule struct {
	ID       string
	Evaluate func(a *asset.Asset) *Draft
}

// DefaultRules returns the built-in policy rules, in evaluation order.
func DefaultRules() []Rule {
	return []Rule{
		{
			ID: "s3-bucket-prod-suffix",
			Evaluate: func(a *asset.Asset) *Draft {
				if a.Type != "aws_s3_bucket" || strings.HasSuffix(a.Name, "-prod") {
					return nil
				}
				return &Draft{
					Severity:    SeverityLow,
					Title:       "S3 bucket not tagged as production",
					Description: fmt.Sprintf("Bucket '%s' does not end with '-prod'.", a.Name),
				}
			},
		},
		{
			ID: "asset-missing-region",
			Evaluate: func(a *asset.Asset) *Draft {
				if a.Region != "" {
					return nil
				}
				return &Draft{
					Severity:    SeverityMedium,
					Title:       "Asset has no region set",
					Description: fmt.Sprintf("Asset '%s' has no region specified.", a.Name),
				}
			},
		},
	}
}
