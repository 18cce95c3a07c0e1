package service

import (
	"fmt"
	"strings"
)

const defaultSubtaskCount = 3

// breakdownTitles splits a title into count subtask titles. Short titles get
// numbered steps; longer ones are cut into word groups and padded with
// "extra" entries when there are fewer groups than count.
func breakdownTitles(title string, count int) []string {
	words := strings.Fields(title)
	out := make([]string, 0, count)
	if len(words) < 4 {
		for i := 1; i <= count; i++ {
			out = append(out, fmt.Sprintf("%s - step %d", title, i))
		}
		return out
	}

	size := (len(words) + count - 1) / count
	var chunks []string
	for i := 0; i < len(words); i += size {
		end := min(i+size, len(words))
		chunks = append(chunks, strings.Join(words[i:end], " "))
	}
	for len(chunks) < count {
		chunks = append(chunks, fmt.Sprintf("%s - extra %d", title, len(chunks)+1))
	}
	for i, c := range chunks[:count] {
		out = append(out, fmt.Sprintf("#%d %s", i+1, c))
	}
	return out
}
