package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"scout-client/internal/ui"
	"strings"
)

const confirmModalID = "confirm"

// confirm shows the confirm dialog on the terminal and waits for a y/N
// answer. Interrupting the command cancels the dialog.
func confirm(ctx context.Context, d deps, in io.Reader, out io.Writer, opts ui.ConfirmOptions) (bool, error) {
	if assumeYes {
		return true, nil
	}

	var unregister func()
	unregister, err := d.Modals.Register(confirmModalID, func() {
		d.Confirm.HandleCancel()
		unregister()
	})
	if err != nil {
		return false, err
	}
	defer unregister()

	answer := d.Confirm.Confirm(opts)
	if o := d.Confirm.State().Options; o != nil {
		fmt.Fprintf(out, "%s\n%s\n[y] %s / [N] %s: ", o.Title, o.Message, o.ConfirmText, o.CancelText)
	}

	lines := make(chan string, 1)
	go func() {
		line, _ := bufio.NewReader(in).ReadString('\n')
		lines <- strings.ToLower(strings.TrimSpace(line))
	}()

	select {
	case line := <-lines:
		if line == "y" || line == "yes" {
			d.Confirm.HandleConfirm()
		} else {
			d.Confirm.HandleCancel()
		}
	case <-ctx.Done():
		d.Modals.CloseTopmost()
		<-answer
		return false, ctx.Err()
	}
	return <-answer, nil
}
