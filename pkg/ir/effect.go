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
package ir

// Effect classifies the side effects an expression may have.  The ordering
// is significant: a compound expression takes the strongest effect of its
// parts, and rewrites which drop an operand require the dropped operand to
// be at most EffectReadState.
type Effect uint8

const (
	// EffectPure expressions neither read nor write state.
	EffectPure Effect = iota
	// EffectReadState expressions may read mutable state.
	EffectReadState
	// EffectUpdateState expressions may write mutable state.
	EffectUpdateState
	// EffectEmbed expressions embed opaque code which must be preserved
	// verbatim.
	EffectEmbed
)

// SideEffect returns the strongest effect of any node within an expression.
func SideEffect(e Expr) Effect {
	effect := EffectPure
	//
	Walk(e, func(e Expr) {
		if c, ok := e.(*Call); ok {
			effect = max(effect, CallEffect(c.Op))
		}
	})
	//
	return effect
}
