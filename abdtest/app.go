// SPDX-FileCopyrightText: 2023 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package abdtest

import (
	"github.com/stretchr/testify/assert"
	"go.uber.org/fx"
	"go.uber.org/fx/fxtest"
)

// NewApp starts building an *fxtest.App for a container test of decorated
// components, e.g. with abdfx.Decorate or abdfx.ProvideLogIO.  Construction
// failures fail the enclosing test.
//
// The t parameter may be anything AsTestable accepts.
func NewApp(t any, o ...fx.Option) *fxtest.App {
	return fxtest.New(AsTestable(t), o...)
}

// NewErrApp builds an *fx.App that is expected to fail, such as when a decorator
// has no abd.Invoker to use or its configuration is invalid.  It asserts that
// construction failed, then returns the app for further assertions.
//
// fx logging is silenced, since the failure is the point of the test.
func NewErrApp(t any, o ...fx.Option) *fx.App {
	app := fx.New(
		append(
			o,
			fx.NopLogger,
		)...,
	)

	assert.Error(AsTestable(t), app.Err())
	return app
}
