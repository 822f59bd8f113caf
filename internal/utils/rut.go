package utils

import "strings"

// FormatRUT normalises a Chilean RUT to the standard XX.XXX.XXX-Y form.
// Dots, dashes and spaces in the input are ignored and the verifier digit
// is upper-cased.  Inputs too short to contain a body and a verifier are
// returned unchanged; the front desk relaxes validation for foreign IDs.
//
//	FormatRUT("123456789")  -> "12.345.678-9"
//	FormatRUT("12345678-9") -> "12.345.678-9"
func FormatRUT(raw string) string {
    clean := strings.NewReplacer(".", "", "-", "", " ", "").Replace(strings.TrimSpace(raw))
    if len(clean) < 2 {
        return raw
    }
    body, dv := clean[:len(clean)-1], strings.ToUpper(clean[len(clean)-1:])

    // Insert a dot every three digits from the right.
    var b strings.Builder
    lead := len(body) % 3
    if lead > 0 {
        b.WriteString(body[:lead])
    }
    for i := lead; i < len(body); i += 3 {
        if b.Len() > 0 {
            b.WriteByte('.')
        }
        b.WriteString(body[i : i+3])
    }
    return b.String() + "-" + dv
}

// ValidRUT checks the modulo-11 verifier digit of a RUT.  The input may be
// formatted or bare.  Non-numeric bodies are invalid.
func ValidRUT(raw string) bool {
    clean := strings.NewReplacer(".", "", "-", "", " ", "").Replace(strings.TrimSpace(raw))
    if len(clean) < 2 {
        return false
    }
    body, dv := clean[:len(clean)-1], strings.ToUpper(clean[len(clean)-1:])

    sum := 0
    factor := 2
    for i := len(body) - 1; i >= 0; i-- {
        c := body[i]
        if c < '0' || c > '9' {
            return false
        }
        sum += int(c-'0') * factor
        factor++
        if factor > 7 {
            factor = 2
        }
    }
    rem := 11 - sum%11
    var want string
    switch rem {
    case 11:
        want = "0"
    case 10:
        want = "K"
    default:
        want = string(rune('0' + rem))
    }
    return dv == want
}

// FormatPhone normalises a Chilean phone number to +56XXXXXXXXX.  Inputs
// already carrying the country code are kept; bare mobile numbers get +56
// (and a leading 9 when missing).  Inputs too short to be a phone number
// are returned as entered.
//
//	FormatPhone("912345678")    -> "+56912345678"
//	FormatPhone("56912345678")  -> "+56912345678"
//	FormatPhone("+56912345678") -> "+56912345678"
func FormatPhone(raw string) string {
    var b strings.Builder
    for _, r := range strings.TrimSpace(raw) {
        if (r >= '0' && r <= '9') || r == '+' {
            b.WriteRune(r)
        }
    }
    clean := b.String()
    switch {
    case clean == "":
        return raw
    case strings.HasPrefix(clean, "+56"):
        return clean
    case strings.HasPrefix(clean, "56"):
        return "+" + clean
    case len(clean) >= 7 && strings.HasPrefix(clean, "9"):
        return "+56" + clean
    case len(clean) >= 7:
        return "+569" + clean
    }
    return clean
}
