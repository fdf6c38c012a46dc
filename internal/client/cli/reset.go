package cli

import (
	"context"

	"github.com/dmitrijs2005/imagenstudio/internal/client/services"
	"github.com/dmitrijs2005/imagenstudio/internal/common"
)

// Reset asks for the new password on a valid reset link.
func (a *App) Reset(ctx context.Context) error {
	flow := a.state.reset
	if flow.Status() != services.ResetValid {
		a.println(flow.Message())
		return common.ErrInvalidTransition
	}

	password, err := a.readSecret("New password")
	if err != nil {
		return err
	}
	confirmation, err := a.readSecret("Confirm new password")
	if err != nil {
		return err
	}

	if err := flow.Submit(ctx, password, confirmation); err != nil {
		if flow.Error() != "" {
			a.println(flow.Error())
		} else {
			a.println(flow.Message())
		}
		return err
	}

	a.println(flow.Message())
	a.println("Type 'back' to go to login.")
	return nil
}

// Back leaves the reset screen for the root location.
func (a *App) Back(ctx context.Context) error {
	a.navigate(ctx, "/")
	return nil
}
