package services

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// newNumber builds a document number from the prefix, the current
// timestamp and a random suffix, e.g. "LN-20240115-3F2A9C1B".
func newNumber(prefix string) string {
	suffix := strings.ToUpper(uuid.New().String()[:8])
	return fmt.Sprintf("%s-%s-%s", prefix, time.Now().Format("20060102"), suffix)
}

func newMemberNo() string      { return newNumber("MB") }
func newAccountNo() string     { return newNumber("SA") }
func newLoanNo() string        { return newNumber("LN") }
func newTransactionNo() string { return newNumber("TX") }
