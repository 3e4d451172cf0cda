package fb2

import (
	"fmt"
	"strings"
	"time"
)

// DefaultNameFormat is the file name used when the config gives none.
const DefaultNameFormat = "{author_lf} - {title}"

// FileName expands a name format into a safe base file name, extension
// excluded. Supported placeholders:
//
//	{author}        first author, "First Last"
//	{author_lf}     first author, "Last First"
//	{title}         book title
//	{seq_name}      series name
//	{seq_num}       series number, two digits
//	{book_time}     title-info date
//	{current_date}  now, YYYY-MM-DD
//	{current_time}  now, HH-MM-SS
func (d *Document) FileName(format string, now time.Time) string {
	if format == "" {
		format = DefaultNameFormat
	}
	seq := d.Sequence()
	name := strings.NewReplacer(
		"{author}", d.AuthorName(false),
		"{author_lf}", d.AuthorName(true),
		"{title}", d.Title(),
		"{seq_name}", seq.Name,
		"{seq_num}", fmt.Sprintf("%02d", seq.Number),
		"{book_time}", d.Date(),
		"{current_date}", now.Format("2006-01-02"),
		"{current_time}", now.Format("15-04-05"),
	).Replace(format)
	return FileSafe(name)
}
