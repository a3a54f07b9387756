// Sportsgate - Sports Performance Analytics Gateway
// Copyright 2026 TNS Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tnslabs/sportsgate

package query

import "fmt"

// TableRef produces a fully-qualified, backtick-quoted table reference.
// Inputs come from deployment configuration, never from requests.
func TableRef(projectID, dataset, table string) string {
	return fmt.Sprintf("`%s.%s.%s`", projectID, dataset, table)
}
