package monitor

import (
	"bufio"
	"io"
)

// ReadLines forwards each line read from r on the returned channel and
// closes it at EOF or on a read error.
func ReadLines(r io.Reader) <-chan string {
	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(r)
		for scanner.Scan() {
			lines <- scanner.Text()
		}
	}()
	return lines
}
