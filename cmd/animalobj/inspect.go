package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Faultbox/animalobj/internal/logger"
	"github.com/Faultbox/animalobj/pkg/formats"
	"github.com/Faultbox/animalobj/pkg/math"
)

func newInspectCmd(_ *app) *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <file.obj>...",
		Short: "Summarize OBJ files and check their cube structure",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			failed := 0
			for _, path := range args {
				doc, err := formats.ParseOBJFile(path)
				if err != nil {
					logger.Error("inspect failed", zap.String("file", path), zap.Error(err))
					fmt.Fprintf(out, "%s\n  ERROR: %v\n", path, err)
					failed++
					continue
				}
				printOBJSummary(out, path, doc)
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d files could not be read", failed, len(args))
			}
			return nil
		},
	}
}

func printOBJSummary(w io.Writer, path string, doc *formats.OBJ) {
	fmt.Fprintln(w, path)
	for _, c := range doc.Comments {
		fmt.Fprintf(w, "  # %s\n", c)
	}
	fmt.Fprintf(w, "  objects: %d  vertices: %d  faces: %d\n",
		len(doc.Objects), doc.GetTotalVertexCount(), doc.GetTotalFaceCount())

	if b, ok := doc.Bounds(); ok {
		fmt.Fprintf(w, "  bounds: min %s  max %s  size %s\n",
			formatVec(b.Min), formatVec(b.Max), formatVec(b.Size()))
	}

	for i := range doc.Objects {
		ob := &doc.Objects[i]
		if !ob.IsHexahedron() {
			fmt.Fprintf(w, "  not a cube: %s (%d vertices, %d faces)\n",
				objectLabel(ob), len(ob.Vertices), len(ob.Faces))
		}
	}
}

func objectLabel(ob *formats.OBJObject) string {
	if ob.Name == "" {
		return "(unnamed)"
	}
	return ob.Name
}

func formatVec(v math.Vec3) string {
	return fmt.Sprintf("(%.4f, %.4f, %.4f)", v.X, v.Y, v.Z)
}
