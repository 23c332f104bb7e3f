package console

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/s2k/videogame-store/internal/core/domain"
)

// readString prints prompt and returns the next trimmed line. It returns
// io.EOF once input is exhausted.
func (c *Console) readString(prompt string) (string, error) {
	fmt.Fprint(c.out, prompt)
	if !c.in.Scan() {
		if err := c.in.Err(); err != nil {
			return "", fmt.Errorf("read input: %w", err)
		}
		fmt.Fprintln(c.out)
		return "", io.EOF
	}
	return strings.TrimSpace(c.in.Text()), nil
}

// readRequired re-prompts until a non-blank line is entered.
func (c *Console) readRequired(prompt, label string) (string, error) {
	for {
		s, err := c.readString(prompt)
		if err != nil {
			return "", err
		}
		if s != "" {
			return s, nil
		}
		c.fail("%s cannot be empty.", label)
	}
}

func (c *Console) readInt(prompt string) (int, error) {
	for {
		s, err := c.readString(prompt)
		if err != nil {
			return 0, err
		}
		n, err := strconv.Atoi(s)
		if err == nil {
			return n, nil
		}
		c.fail("Invalid number. Try again.")
	}
}

func (c *Console) readMoney(prompt string) (domain.Money, error) {
	for {
		s, err := c.readString(prompt)
		if err != nil {
			return 0, err
		}
		m, err := domain.ParseMoney(s)
		if err == nil {
			return m, nil
		}
		c.fail("Invalid decimal number. Try again.")
	}
}

func (c *Console) readGenre(prompt string) (domain.Genre, error) {
	for {
		s, err := c.readString(prompt)
		if err != nil {
			return "", err
		}
		g, err := domain.ParseGenre(s)
		if err == nil {
			return g, nil
		}
		c.fail("Genre does not exist in our list. Please enter another genre.")
	}
}

// readValid re-prompts until the line passes tag.
func (c *Console) readValid(prompt, label, tag string) (string, error) {
	for {
		s, err := c.readString(prompt)
		if err != nil {
			return "", err
		}
		if err := c.validator.Var(label, s, tag); err != nil {
			c.println(describe(err, c.log))
			continue
		}
		return s, nil
	}
}

func (c *Console) println(a ...any) {
	fmt.Fprintln(c.out, a...)
}

func (c *Console) printf(format string, a ...any) {
	fmt.Fprintf(c.out, format, a...)
}

func (c *Console) ok(format string, a ...any) {
	fmt.Fprintf(c.out, "[OK] "+format+"\n", a...)
}

func (c *Console) fail(format string, a ...any) {
	fmt.Fprintf(c.out, "[X] "+format+"\n", a...)
}
