// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package main

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"

	"github.com/gogpu/vstage"
	"github.com/gogpu/vstage/wgsl"
)

// report prints the planned buckets, the draw groups of each purpose and
// the commit summary. Styling is dropped when w is not a terminal.
func report(w io.Writer, s *vstage.Stage, res vstage.CommitResult, shaders bool) error {
	out := termenv.NewOutput(w)
	heading := func(text string) termenv.Style {
		return out.String(text).Bold().Foreground(out.Color("6"))
	}
	dim := func(text string) termenv.Style {
		return out.String(text).Faint()
	}

	cfg := s.Config()
	fmt.Fprintf(w, "%s %s\n", heading("stage"), s.Label())
	fmt.Fprintf(w, "  size %d, width %d, %g indices per vertex\n\n",
		s.Size(), cfg.IndexAddressingWidth, cfg.IndicesPerVertex)

	fmt.Fprintln(w, heading("buffers"))
	for _, b := range s.Buffers() {
		fmt.Fprintf(w, "  %s/%s  stride %d  %d bytes\n", b.Purpose(), b.Usage(), b.Stride(), len(b.Bytes()))
		for _, v := range b.Views() {
			state := ""
			if !v.Enabled {
				state = " " + dim("(disabled)").String()
			}
			fmt.Fprintf(w, "    @%d %-12s %d×%-13v offset %d%s\n",
				v.Index, v.Name, v.ComponentsPerAttribute, v.Datatype, v.OffsetInBytes, state)
		}
	}
	for _, a := range s.Attributes() {
		if a.Precreated() {
			fmt.Fprintf(w, "  %s @%d %s offset %d stride %d\n", dim("external"),
				a.Index, a.Name, a.External.OffsetInBytes, a.External.StrideInBytes)
		}
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, heading("purposes"))
	for _, p := range s.Purposes() {
		groups := s.VertexArrays(p)
		fmt.Fprintf(w, "  %s  %d groups\n", p, len(groups))
		for i, g := range groups {
			fmt.Fprintf(w, "    [%d] first %d count %d indices %d\n", i, g.FirstVertex, g.VertexCount, g.IndicesCount)
		}
	}
	fmt.Fprintln(w)

	fmt.Fprintf(w, "%s %d created, %d updated, %d bytes uploaded, %d vertex arrays\n",
		heading("commit"), res.BuffersCreated, res.BuffersUpdated, res.BytesUploaded, res.VertexArrays)

	if !shaders {
		return nil
	}
	for _, p := range s.Purposes() {
		src, err := wgsl.VertexShader(s.PurposeAttributes(p))
		if err != nil {
			return fmt.Errorf("purpose %q: %w", p, err)
		}
		fmt.Fprintf(w, "\n%s\n%s", heading("// purpose "+p), src)
	}
	return nil
}
