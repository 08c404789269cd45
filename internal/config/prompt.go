package config

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
)

const (
	msgDelayPrompt   = "How many seconds should the program wait between frames?"
	msgSecondsPrompt = "Type 1 if seconds should be displayed, type 0 if they shouldn't."
)

// Prompt asks for the frame delay and the show-seconds flag on out and reads both
// answers from in as whitespace separated integers. Only an answer of 1 enables seconds.
func (c *Config) Prompt(in io.Reader, out io.Writer) error {
	words := bufio.NewScanner(in)
	words.Split(bufio.ScanWords)

	fmt.Fprintln(out, msgDelayPrompt)
	delay, err := nextInt(words)
	if err != nil {
		return fmt.Errorf("failed to read frame delay: %w", err)
	}

	fmt.Fprintln(out, msgSecondsPrompt)
	seconds, err := nextInt(words)
	if err != nil {
		return fmt.Errorf("failed to read seconds flag: %w", err)
	}

	c.FrameDelay = delay
	c.ShowSeconds = seconds == 1
	return nil
}

func nextInt(words *bufio.Scanner) (int, error) {
	if !words.Scan() {
		if err := words.Err(); err != nil {
			return 0, err
		}
		return 0, io.ErrUnexpectedEOF
	}
	n, err := strconv.Atoi(words.Text())
	if err != nil {
		return 0, fmt.Errorf("%q is not an integer", words.Text())
	}
	return n, nil
}
