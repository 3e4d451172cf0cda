// Package info provides the purefb2 info command.
package info

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pure-fb2/purefb2/internal/caption"
	"github.com/pure-fb2/purefb2/internal/view"
	"github.com/pure-fb2/purefb2/pkg/fb2"
)

// NewCmdInfo creates the info command.
func NewCmdInfo() *cobra.Command {
	var (
		output      string
		chapters    bool
		withCaption bool
	)

	cmd := &cobra.Command{
		Use:   "info <file.fb2>",
		Short: "Show book metadata",
		Long:  `Show the metadata of an FB2 file: title, authors, series, genres and completion status.`,
		Example: `  # Show book metadata
  purefb2 info book.fb2

  # Include the chapter list
  purefb2 info --chapters book.fb2`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := view.ValidateFormat(output); err != nil {
				return err
			}
			noColor, _ := cmd.Flags().GetBool("no-color")
			renderer := view.NewRenderer(view.Format(output), noColor)
			return runInfo(renderer, args[0], chapters, withCaption)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "table", "output format: table, json, plain")
	cmd.Flags().BoolVar(&chapters, "chapters", false, "list chapter titles")
	cmd.Flags().BoolVar(&withCaption, "caption", false, "print the announcement caption")

	return cmd
}

func runInfo(renderer *view.Renderer, path string, withChapters, withCaption bool) error {
	doc, err := fb2.Open(path)
	if err != nil {
		return err
	}

	renderer.RenderKeyValue("Title", doc.Title())
	renderer.RenderKeyValue("Authors", strings.Join(doc.AuthorsPlain(), ", "))
	if seq := doc.Sequence(); seq.Name != "" {
		renderer.RenderKeyValue("Series", fmt.Sprintf("%s № %d", seq.Name, seq.Number))
	}
	renderer.RenderKeyValue("Genres", strings.Join(doc.Genres(), ", "))
	if url := doc.SrcURL(); url != "" {
		renderer.RenderKeyValue("Source", url)
	}
	if date := doc.Date(); date != "" {
		renderer.RenderKeyValue("Updated", date)
	}
	renderer.RenderKeyValue("Last chapter", doc.LastChapterTitle())

	status := "ongoing"
	if doc.Finished() {
		status = "finished"
	}
	renderer.RenderKeyValue("Status", status)

	if withChapters {
		renderer.RenderText("")
		for _, ch := range doc.Chapters() {
			renderer.RenderText(strings.Repeat("  ", ch.Depth-1) + ch.Title)
		}
	}

	if withCaption {
		renderer.RenderText("")
		renderer.RenderText(caption.Build(doc, caption.Options{ModifiedTime: doc.Date()}))
	}

	return nil
}
