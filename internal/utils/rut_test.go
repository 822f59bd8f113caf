package utils

import "testing"

func TestFormatRUT(t *testing.T) {
    cases := []struct{ in, want string }{
        {"123456789", "12.345.678-9"},
        {"12345678-9", "12.345.678-9"},
        {"12.345.678-9", "12.345.678-9"},
        {" 12345678k ", "12.345.678-K"},
        {"1234567", "123.456-7"},
        {"19", "1-9"},
        // Too short to split into body and verifier: returned as entered.
        {"5", "5"},
        {"", ""},
    }
    for _, c := range cases {
        if got := FormatRUT(c.in); got != c.want {
            t.Errorf("FormatRUT(%q) = %q, want %q", c.in, got, c.want)
        }
    }
}

func TestValidRUT(t *testing.T) {
    // 12.345.678 has verifier digit 5 under modulo 11.
    valid := []string{"12345678-5", "12.345.678-5", "123456785"}
    for _, r := range valid {
        if !ValidRUT(r) {
            t.Errorf("ValidRUT(%q) = false, want true", r)
        }
    }
    invalid := []string{"12345678-9", "12.345.678-K", "abc-5", "", "5"}
    for _, r := range invalid {
        if ValidRUT(r) {
            t.Errorf("ValidRUT(%q) = true, want false", r)
        }
    }
}

func TestFormatPhone(t *testing.T) {
    cases := []struct{ in, want string }{
        {"912345678", "+56912345678"},
        {"56912345678", "+56912345678"},
        {"+56912345678", "+56912345678"},
        {"12345678", "+56912345678"},
        {"9 1234 5678", "+56912345678"},
        {"123", "123"},
        {"", ""},
    }
    for _, c := range cases {
        if got := FormatPhone(c.in); got != c.want {
            t.Errorf("FormatPhone(%q) = %q, want %q", c.in, got, c.want)
        }
    }
}
