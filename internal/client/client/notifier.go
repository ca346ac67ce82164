package client

import (
	"context"

	"github.com/dmitrijs2005/guialocal/internal/common"
	"github.com/dmitrijs2005/guialocal/internal/secevents"
)

// FunctionInvoker is the part of Backend a FunctionNotifier needs.
type FunctionInvoker interface {
	InvokeFunction(ctx context.Context, name string, payload any) error
}

// FunctionNotifier delivers security events to the log-security-event
// function.
type FunctionNotifier struct {
	invoker FunctionInvoker
}

func NewFunctionNotifier(inv FunctionInvoker) *FunctionNotifier {
	return &FunctionNotifier{invoker: inv}
}

func (n *FunctionNotifier) Notify(ctx context.Context, e secevents.Event) error {
	return n.invoker.InvokeFunction(ctx, common.LogSecurityEventFunction, e)
}
