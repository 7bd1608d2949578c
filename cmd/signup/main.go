package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"sort"
	"time"

	"github.com/tiiiiiimmy/nextJS-login-ui/internal/clients"
	"github.com/tiiiiiimmy/nextJS-login-ui/internal/clock"
	"github.com/tiiiiiimmy/nextJS-login-ui/internal/form"
	"github.com/tiiiiiimmy/nextJS-login-ui/internal/validation"
)

// signup is a command-line registration client. It drives the same form
// core the browser flow uses: each field value is applied as a change
// event followed by a blur, then the form is submitted against the
// server, so client-side validation runs before any request is sent.
func main() {
	var (
		serverURL = flag.String("server", "http://localhost:8080", "Base URL of the registration service")
		firstName = flag.String("first-name", "", "First name")
		lastName  = flag.String("last-name", "", "Last name")
		email     = flag.String("email", "", "Email address (gmail.com only)")
		password  = flag.String("password", "", "Password")
		confirm   = flag.String("confirm", "", "Password confirmation")
		dob       = flag.String("dob", "", "Date of birth, YYYY-MM-DD")
		terms     = flag.Bool("accept-terms", false, "Accept the terms and conditions")
		timeout   = flag.Duration("timeout", 10*time.Second, "Request timeout")
		reserved  = flag.String("reserved-email", "test@gmail.com", "Email treated as already registered")
	)
	flag.Parse()

	taken := validation.Normalize(*reserved)
	rules := validation.NewRules(validation.FullVariant, func(addr string) bool {
		return addr == taken
	}, clock.New())

	client := clients.NewRegisterClient(*serverURL, &http.Client{Timeout: *timeout})
	f := form.New(rules, client, 0)
	defer f.Close()

	fields := map[string]string{
		validation.FieldFirstName:       *firstName,
		validation.FieldLastName:        *lastName,
		validation.FieldEmail:           *email,
		validation.FieldPassword:        *password,
		validation.FieldConfirmPassword: *confirm,
		validation.FieldDateOfBirth:     *dob,
	}
	for _, field := range rules.Variant().Fields() {
		if field == validation.FieldAcceptTerms {
			f.SetTerms(*terms)
			continue
		}
		f.Change(field, fields[field])
		f.Blur(field)
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	state, errs := f.Submit(ctx)
	if state == form.StateSuccess {
		fmt.Printf("Registered %s\n", validation.Normalize(*email))
		return
	}

	fmt.Fprintf(os.Stderr, "Registration %s:\n", state)
	keys := make([]string, 0, len(errs))
	for field := range errs {
		keys = append(keys, field)
	}
	sort.Strings(keys)
	for _, field := range keys {
		fmt.Fprintf(os.Stderr, "  %s: %s\n", field, errs[field])
	}
	os.Exit(1)
}
