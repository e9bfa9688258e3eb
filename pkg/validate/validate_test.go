package validate_test

import (
	"testing"

	"github.com/shashiranjanraj/catalog-ingest/pkg/validate"
)

type productInput struct {
	ID       string  `json:"productId"   validate:"required,max=8"`
	URL      string  `json:"productUrl"  validate:"required,url"`
	Category *string `json:"category"    validate:"max=5"`
	Retailer int     `json:"retailerId"  validate:"gte=0,lte=100"`
	Kind     string  `json:"kind"        validate:"nullable,in=shoe|shirt"`
}

func str(s string) *string { return &s }

func TestValidInput(t *testing.T) {
	errs := validate.Struct(productInput{ID: "p1", URL: "https://shop.example/p1", Category: str("Tops"), Retailer: 5})
	if validate.HasErrors(errs) {
		t.Errorf("expected no errors, got: %v", errs)
	}
}

func TestRequiredFails(t *testing.T) {
	errs := validate.Struct(productInput{})
	if _, ok := errs["productId"]; !ok {
		t.Error("expected productId to be required")
	}
	if _, ok := errs["productUrl"]; !ok {
		t.Error("expected productUrl to be required")
	}
	if _, ok := errs["category"]; ok {
		t.Error("nil category must not be validated")
	}
}

func TestURLRule(t *testing.T) {
	for _, bad := range []string{"not a url", "ftp://x/1", "/relative", "http://"} {
		errs := validate.Struct(productInput{ID: "p", URL: bad})
		if errs["productUrl"] == "" {
			t.Errorf("expected url error for %q", bad)
		}
	}
}

func TestPointerIsDereferenced(t *testing.T) {
	errs := validate.Struct(&productInput{ID: "p", URL: "http://x/1", Category: str("Outerwear")})
	if errs["category"] != "must not exceed 5 characters" {
		t.Errorf("unexpected category error: %q", errs["category"])
	}
}

func TestRangeRules(t *testing.T) {
	errs := validate.Struct(productInput{ID: "p", URL: "http://x/1", Retailer: -1})
	if errs["retailerId"] == "" {
		t.Error("expected gte error")
	}
	errs = validate.Struct(productInput{ID: "p", URL: "http://x/1", Retailer: 101})
	if errs["retailerId"] == "" {
		t.Error("expected lte error")
	}
}

func TestInRule(t *testing.T) {
	if errs := validate.Struct(productInput{ID: "p", URL: "http://x/1", Kind: "hat"}); errs["kind"] == "" {
		t.Error("expected in error")
	}
	if errs := validate.Struct(productInput{ID: "p", URL: "http://x/1", Kind: "shoe"}); validate.HasErrors(errs) {
		t.Errorf("unexpected errors: %v", errs)
	}
}

func TestFirst(t *testing.T) {
	field, msg := validate.First(map[string]string{"productUrl": "b", "productId": "a"})
	if field != "productId" || msg != "a" {
		t.Errorf("got %s %s", field, msg)
	}
	if field, _ := validate.First(nil); field != "" {
		t.Error("expected empty field")
	}
}
