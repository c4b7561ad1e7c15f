package walletapp

import (
	"crypto/sha256"
	"fmt"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	maxReviewKey   = 64
	maxReviewValue = 1024
)

// ReviewItem is one key/value page of a review.
type ReviewItem struct {
	Key   string
	Value string
}

// Review is the human readable summary shown before a decision is asked for.
type Review struct {
	Title string
	Items []ReviewItem
}

func (r *Review) add(key, value string) {
	r.Items = append(r.Items, ReviewItem{
		Key:   truncate(printable(key), maxReviewKey),
		Value: truncate(printable(value), maxReviewValue),
	})
}

func (r Review) String() string {

	var b strings.Builder
	b.WriteString(r.Title)

	for _, item := range r.Items {
		fmt.Fprintf(&b, "\n%s: %s", item.Key, item.Value)
	}

	return b.String()

}

// Value returns the value of the first item named key.
func (r Review) Value(key string) (string, bool) {
	for _, item := range r.Items {
		if item.Key == key {
			return item.Value, true
		}
	}
	return "", false
}

func addressReview(path DerivationPath, address string) Review {

	review := Review{Title: "Verify Address"}
	review.add("Path", path.String())
	review.add("Address", address)

	return review

}

func signReview(path DerivationPath, payload []byte) Review {

	tx, err := DecodeTransaction(payload)

	if err != nil {

		digest := sha256.Sum256(payload)

		review := Review{Title: "Blind Sign"}
		review.add("Path", path.String())
		review.add("Size", strconv.Itoa(len(payload)))
		review.add("Hash", fmt.Sprintf("%x", digest))

		return review
	}

	review := Review{Title: "Sign Transaction"}
	review.add("To", tx.To)
	review.add("Amount", strconv.FormatUint(tx.Amount, 10))
	review.add("Fee", strconv.FormatUint(tx.Fee, 10))
	review.add("Nonce", strconv.FormatUint(tx.Nonce, 10))

	if tx.Memo != "" {
		review.add("Memo", tx.Memo)
	}

	review.add("Path", path.String())

	return review

}

// printable replaces control characters so a host supplied value cannot
// forge extra lines on the review screen.
func printable(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return utf8.RuneError
		}
		return r
	}, s)
}

// truncate cuts s to at most limit bytes without splitting a rune.
func truncate(s string, limit int) string {

	if len(s) <= limit {
		return s
	}

	cut := limit - 3

	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}

	return s[:cut] + "..."

}
