// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package cli

import (
	"fmt"
	"io"

	x509info "github.com/H0llyW00dzZ/x509-validator/src/x509/info"
)

func writeViewTable(w io.Writer, view *x509info.View) error {
	_, err := io.WriteString(w, view.RenderTable())
	return err
}

func writeViewJSON(w io.Writer, view *x509info.View) error {
	data, err := view.ToVisualizationJSON()
	if err != nil {
		return fmt.Errorf("failed to marshal certificate view: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}
