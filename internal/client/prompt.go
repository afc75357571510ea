package client

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/atinyakov/VendorDesk/internal/models"
)

// Prompter reads vendor fields interactively.
type Prompter struct {
	scanner *bufio.Scanner
	out     io.Writer
}

// NewPrompter returns a Prompter reading answers from in and writing
// questions to out.
func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{scanner: bufio.NewScanner(in), out: out}
}

// Line prints prompt and reads one trimmed line. ok is false once input
// is exhausted.
func (p *Prompter) Line(prompt string) (line string, ok bool) {
	fmt.Fprint(p.out, prompt)
	if !p.scanner.Scan() {
		return "", false
	}
	return strings.TrimSpace(p.scanner.Text()), true
}

func (p *Prompter) ask(question string) string {
	line, _ := p.Line(question)
	return line
}

// Vendor asks for every field needed to register a vendor.
func (p *Prompter) Vendor() models.Vendor {
	return models.Vendor{
		Name:     p.ask("Enter name: "),
		Email:    p.ask("Enter email: "),
		Phone:    p.ask("Enter phone: "),
		Address:  p.ask("Enter address: "),
		Password: p.ask("Enter password: "),
	}
}

// Credentials asks for an email and password pair.
func (p *Prompter) Credentials() models.LoginAttempt {
	return models.LoginAttempt{
		Email:    p.ask("Enter email: "),
		Password: p.ask("Enter password: "),
	}
}

// Query asks for search criteria. Blank answers are ignored by the server.
func (p *Prompter) Query() models.VendorQuery {
	return models.VendorQuery{
		Name:    p.ask("Name contains: "),
		Email:   p.ask("Email contains: "),
		Phone:   p.ask("Phone contains: "),
		Address: p.ask("Address contains: "),
	}
}
