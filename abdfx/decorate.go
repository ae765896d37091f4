// SPDX-FileCopyrightText: 2023 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package abdfx

import (
	"github.com/xmidt-org/abd"
	"go.uber.org/fx"
)

// DecorateIn is the set of dependencies required to decorate a component of type F.
type DecorateIn[F any] struct {
	fx.In

	// Target is the component being decorated
	Target F

	// Invoker is the interception hook applied to Target
	Invoker abd.Invoker
}

// Decorate returns an fx.Decorate option that replaces the F component with
// the result of abd.Decorate.  The abd.Invoker component supplies the interception.
func Decorate[F any](opts ...abd.Option) fx.Option {
	return fx.Decorate(
		func(in DecorateIn[F]) (F, error) {
			return abd.Decorate(in.Target, in.Invoker, opts...)
		},
	)
}

// DecorateWith is like Decorate, but uses the given Invoker rather than
// an abd.Invoker component.
func DecorateWith[F any](inv abd.Invoker, opts ...abd.Option) fx.Option {
	return fx.Decorate(
		func(f F) (F, error) {
			return abd.Decorate(f, inv, opts...)
		},
	)
}

// ProxyIn is the set of dependencies required to proxy a component of type T.
type ProxyIn[T any] struct {
	fx.In

	// Object is the component whose methods are proxied
	Object T

	// Invoker is the interception hook applied to each method
	Invoker abd.Invoker
}

// ProvideProxy provides an *abd.Proxy around the T component.
func ProvideProxy[T any](opts ...abd.ProxyOption) fx.Option {
	return fx.Provide(
		func(in ProxyIn[T]) (*abd.Proxy, error) {
			return abd.NewProxy(in.Object, in.Invoker, opts...)
		},
	)
}
