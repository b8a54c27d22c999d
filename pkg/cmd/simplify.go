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
	"github.com/consensys/go-arith/pkg/syntax"
	"github.com/fatih/color"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// simplifyCmd represents the simplify command
var simplifyCmd = &cobra.Command{
	Use:   "simplify [flags] expr...",
	Short: "Simplify one or more expressions.",
	Long: `Simplify one or more expressions, optionally under assumed constraints.
	Expressions are given in the printable form, e.g. "(x + 5) - 5" or
	"floormod(x*4 + 2, 4)".  Constraints given via --assume are entered
	before simplification, e.g. --assume "0 <= x".`,
	Run: func(cmd *cobra.Command, args []string) {
		if GetFlag(cmd, "verbose") {
			log.SetLevel(log.DebugLevel)
		}
		//
		if len(args) == 0 {
			fmt.Println(cmd.UsageString())
			os.Exit(1)
		}
		//
		flags, err := parseExtensions(GetStringArray(cmd, "extension"))
		if err != nil {
			fmt.Println(err)
			os.Exit(2)
		}
		//
		analyzer := arith.NewAnalyzer()
		simplifier := analyzer.Simplifier()
		simplifier.SetEnabledExtensions(flags)
		simplifier.SetMaximumRewriteSteps(GetInt(cmd, "steps"))
		// enter assumptions (never restored: the process is one-shot)
		for _, assumption := range GetStringArray(cmd, "assume") {
			constraint, err := syntax.Parse(assumption)
			//
			if err != nil {
				fmt.Printf("invalid assumption %q: %s\n", assumption, err)
				os.Exit(2)
			}
			//
			analyzer.EnterConstraint(constraint)
		}
		//
		for _, input := range args {
			expr, err := syntax.Parse(input)
			//
			if err != nil {
				fmt.Printf("invalid expression %q: %s\n", input, err)
				os.Exit(2)
			}
			//
			simplified := analyzer.Simplify(expr)
			fmt.Printf("%s => %s\n", expr, resultColor.Sprint(simplified))
		}
		//
		if GetFlag(cmd, "stats") {
			log.SetLevel(log.DebugLevel)
		}
		//
		log.Debugf("simplifier stats: %s", simplifier.StatsCounters())
	},
}

var resultColor = color.New(color.FgGreen, color.Bold)

func init() {
	rootCmd.AddCommand(simplifyCmd)
	simplifyCmd.Flags().StringArray("assume", nil, "assume a constraint while simplifying")
	simplifyCmd.Flags().StringArray("extension", nil, "enable an optional extension")
	simplifyCmd.Flags().Int64("steps", 0, "bound the number of rule firings (0 = unlimited)")
	simplifyCmd.Flags().Bool("stats", false, "report simplifier stats counters")
}
