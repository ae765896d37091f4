// SPDX-FileCopyrightText: 2023 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

// Package abdfx integrates abd decoration with go.uber.org/fx.
//
// # Decorated functions
//
// Decorate replaces a function-typed component with a decorated version of itself,
// using whatever abd.Invoker the container provides:
//
//	type Adder func(int, int) int
//
//	fx.New(
//	  fx.Supply(Adder(add)),
//	  fx.Provide(func() abd.Invoker { return abd.Passthrough{} }),
//	  abdfx.Decorate[Adder](),
//	  fx.Invoke(func(a Adder) {
//	    a(2, 3) // intercepted
//	  }),
//	)
//
// # Configured decorators
//
// ProvideLogIO unmarshals an abdlog.Config from a *viper.Viper component and
// provides the abd.Invoker it describes.
package abdfx
