// Copyright Consensys Software Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0
package cmd

import (
	"fmt"
	"os"

	"github.com/consensys/go-arith/pkg/arith"
	"github.com/spf13/cobra"
)

// GetFlag reads an expected boolean flag, or prints the error and exits with
// status 2 if an error arises.
func GetFlag(cmd *cobra.Command, flag string) bool {
	r, err := cmd.Flags().GetBool(flag)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}

	return r
}

// GetInt reads an expected integer flag, or prints the error and exits with
// status 2 if an error arises.
func GetInt(cmd *cobra.Command, flag string) int64 {
	r, err := cmd.Flags().GetInt64(flag)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}

	return r
}

// GetStringArray reads an expected string-array flag, or prints the error and
// exits with status 2 if an error arises.
func GetStringArray(cmd *cobra.Command, flag string) []string {
	r, err := cmd.Flags().GetStringArray(flag)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}

	return r
}

// extensionNames maps user-facing extension names to their flag bits.
var extensionNames = map[string]arith.Extension{
	"transitively-prove-inequalities":       arith.ExtTransitivelyProveInequalities,
	"comparison-of-product-and-sum":         arith.ExtComparisonOfProductAndSum,
	"apply-constraints-to-boolean-branches": arith.ExtApplyConstraintsToBooleanBranches,
	"convert-boolean-to-and-of-ors":         arith.ExtConvertBooleanToAndOfOrs,
}

// parseExtensions folds a list of extension names into a flag set.
func parseExtensions(names []string) (arith.Extension, error) {
	flags := arith.ExtNone
	//
	for _, name := range names {
		bit, ok := extensionNames[name]
		//
		if !ok {
			return 0, fmt.Errorf("unknown extension %q", name)
		}
		//
		flags |= bit
	}
	//
	return flags, nil
}
