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
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/consensys/go-arith/pkg/arith"
	"github.com/consensys/go-arith/pkg/syntax"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// replCmd represents the repl command
var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Interactively simplify expressions.",
	Long: `Interactively simplify expressions.  Each line read is simplified and
	printed back.  Lines of the form "assume <constraint>" enter a
	constraint for the rest of the session; "stats" prints the counters;
	"quit" exits.`,
	Run: func(cmd *cobra.Command, args []string) {
		if GetFlag(cmd, "verbose") {
			log.SetLevel(log.DebugLevel)
		}
		// only prompt when attached to a terminal
		interactive := term.IsTerminal(int(os.Stdin.Fd()))
		analyzer := arith.NewAnalyzer()
		scanner := bufio.NewScanner(os.Stdin)
		//
		for {
			if interactive {
				fmt.Print("> ")
			}
			//
			if !scanner.Scan() {
				break
			}
			//
			line := strings.TrimSpace(scanner.Text())
			//
			switch {
			case line == "":
				continue
			case line == "quit" || line == "exit":
				return
			case line == "stats":
				fmt.Println(analyzer.Simplifier().StatsCounters())
				continue
			case strings.HasPrefix(line, "assume "):
				constraint, err := syntax.Parse(strings.TrimPrefix(line, "assume "))
				//
				if err != nil {
					fmt.Println(err)
					continue
				}
				// deliberately never restored: assumptions accumulate for
				// the rest of the session
				analyzer.EnterConstraint(constraint)
				fmt.Printf("assumed %s\n", constraint)
				continue
			}
			//
			expr, err := syntax.Parse(line)
			//
			if err != nil {
				fmt.Println(err)
				continue
			}
			//
			fmt.Printf("%s => %s\n", expr, resultColor.Sprint(analyzer.Simplify(expr)))
		}
	},
}

func init() {
	rootCmd.AddCommand(replCmd)
}
