package gst

import (
	"fmt"
	"regexp"
	"unicode"
)

// gstinPattern: 2-digit state code, 5-letter PAN prefix, 4 PAN digits,
// 1 PAN letter, 1 entity number, literal 'Z', 1 checksum char.
var gstinPattern = regexp.MustCompile(`^[0-9]{2}[A-Z]{5}[0-9]{4}[A-Z][1-9A-Z]Z[0-9A-Z]$`)

// ChecksumEnforced gates the modulo-36 check character validation, wired
// from GSTIN_CHECKSUM_ENFORCED at startup. Format and state-code checks
// always run.
var ChecksumEnforced = false

// ValidateGSTIN checks the 15-character format, that the embedded state code
// exists in the state-code table, and — when enforcement is on — the
// modulo-36 checksum. Returns nil on success or a ValidationError naming the
// specific failure.
func ValidateGSTIN(gstin string) error {
	if len(gstin) != 15 {
		return &ValidationError{Field: "gstin", Reason: "must be exactly 15 characters"}
	}
	if !gstinPattern.MatchString(gstin) {
		return &ValidationError{Field: "gstin", Reason: "does not match GSTIN format"}
	}
	if !ValidStateCode(gstin[:2]) {
		return &ValidationError{Field: "gstin", Reason: fmt.Sprintf("unknown state code %q", gstin[:2])}
	}
	if ChecksumEnforced && !gstinChecksumOK(gstin) {
		return &ValidationError{Field: "gstin", Reason: "checksum mismatch"}
	}
	return nil
}

// ValidateGSTINForState additionally requires the GSTIN's embedded state code
// to equal the declared state code of the holder.
func ValidateGSTINForState(gstin, stateCode string) error {
	if err := ValidateGSTIN(gstin); err != nil {
		return err
	}
	if gstin[:2] != stateCode {
		return &ValidationError{
			Field:  "gstin",
			Reason: fmt.Sprintf("state code %q does not match declared state code %q", gstin[:2], stateCode),
		}
	}
	return nil
}

// ExtractStateCode returns the first two digits of a GSTIN without validating
// the rest of the string.
func ExtractStateCode(gstin string) string {
	if len(gstin) < 2 {
		return ""
	}
	return gstin[:2]
}

// gstinChecksumOK verifies the 15th character using the official modulo-36
// algorithm: map each of the first 14 characters to 0–35, multiply by
// alternating factors 1,2 (starting with 1), sum quotient and remainder of
// each product by 36, and derive the check character from (36 - sum%36) % 36.
func gstinChecksumOK(gstin string) bool {
	charValue := func(c byte) int {
		if c >= '0' && c <= '9' {
			return int(c - '0')
		}
		return int(c-'A') + 10
	}
	total := 0
	for i := 0; i < 14; i++ {
		factor := 1
		if i%2 == 1 {
			factor = 2
		}
		product := charValue(gstin[i]) * factor
		total += product/36 + product%36
	}
	check := (36 - total%36) % 36
	var expected byte
	if check < 10 {
		expected = byte('0' + check)
	} else {
		expected = byte('A' + check - 10)
	}
	return gstin[14] == expected
}

// ValidateHSN checks that the HSN code is numeric with length 4, 6, or 8.
func ValidateHSN(hsn string) error {
	switch len(hsn) {
	case 4, 6, 8:
	default:
		return &ValidationError{Field: "hsn_code", Reason: "length must be 4, 6 or 8 digits"}
	}
	for _, r := range hsn {
		if !unicode.IsDigit(r) {
			return &ValidationError{Field: "hsn_code", Reason: "must contain only digits"}
		}
	}
	return nil
}

// ValidatePincode checks a 6-digit Indian pincode.
func ValidatePincode(pincode string) error {
	if len(pincode) != 6 {
		return &ValidationError{Field: "pincode", Reason: "must be exactly 6 digits"}
	}
	for _, r := range pincode {
		if !unicode.IsDigit(r) {
			return &ValidationError{Field: "pincode", Reason: "must contain only digits"}
		}
	}
	return nil
}
