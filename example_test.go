package mailscreen_test

import (
	"context"
	"fmt"

	"github.com/optimode/mailscreen"
	"github.com/optimode/mailscreen/check"
)

// exampleResolver stands in for the DoH lookup so the examples run offline.
var exampleResolver = check.MXResolverFunc(func(_ context.Context, domain string) (bool, error) {
	return domain == "example.com", nil
})

func ExampleVerifier_Verify() {
	v := mailscreen.New().WithResolver(exampleResolver)

	for _, addr := range []string{"user@example.com", "user@example.org", "invalid", "admin@example.com"} {
		out, _ := v.Verify(context.Background(), addr)
		fmt.Printf("%s: %s\n", addr, out.Text())
	}
	// Output:
	// user@example.com: Valid email
	// user@example.org: Domain has no mail server or not found
	// invalid: Invalid format
	// admin@example.com: Role-based address flagged
}

func ExampleVerifier_VerifyAll() {
	v := mailscreen.New().WithResolver(exampleResolver)

	report, _ := v.VerifyAll(context.Background(), "bad\nadmin@x.com\n\nuser@example.com\nsomeone@yopmail.com")
	fmt.Println(report.Render())
	fmt.Println("copyable:", report.Copyable())
	// Output:
	// bad: Invalid format
	// admin@x.com: Role-based address flagged
	// user@example.com: Valid email
	// someone@yopmail.com: Disposable domain blocked
	// copyable: true
}

func ExampleVerifier_VerifyAll_missingInput() {
	v := mailscreen.New().WithResolver(exampleResolver)

	report, err := v.VerifyAll(context.Background(), "\n   \n")
	fmt.Println(report.Len(), err)
	// Output: 0 mailscreen: no input
}

func ExampleVerifier_WithPolicy() {
	v := mailscreen.New().
		WithResolver(exampleResolver).
		WithPolicy(mailscreen.PolicyOptions{RoleAccounts: []string{"billing"}})

	out, _ := v.Verify(context.Background(), "billing@example.com")
	fmt.Println(out.Kind, out.Reason)
	// Output: policy_rejected role-based address flagged
}

func ExampleReport_Count() {
	v := mailscreen.New().WithResolver(exampleResolver)

	report, _ := v.VerifyAll(context.Background(), "a@example.com\nb@example.com\nc@example.net")
	fmt.Println(report.Count(mailscreen.Verified), report.Count(mailscreen.DomainUnresolvable))
	// Output: 2 1
}
