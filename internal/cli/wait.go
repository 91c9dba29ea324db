package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
)

// WaitForEnter prints prompt to w and blocks until a line (or EOF) arrives
// on r or ctx is done. EOF counts as confirmation so that piping /dev/null
// never hangs.
func WaitForEnter(ctx context.Context, r io.Reader, w io.Writer, prompt string) error {
	if prompt != "" {
		if _, err := fmt.Fprint(w, prompt); err != nil {
			return err
		}
	}

	done := make(chan error, 1)
	go func() {
		_, err := bufio.NewReader(r).ReadString('\n')
		if errors.Is(err, io.EOF) {
			err = nil
		}
		done <- err
	}()

	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}
