package models

import "time"

// KYC holds the identity documents an account holder submits for verification.
// There is at most one record per account; a new submission replaces every field.
type KYC struct {
	AccountID        int64     `db:"account_id"`
	IDNumber         string    `db:"id_number"`
	IDPhoto          []byte    `db:"id_photo"`
	IDType           string    `db:"id_type"`
	Address          string    `db:"address"`
	ProofOfAddress   []byte    `db:"proof_of_address"`
	SecurityQuestion string    `db:"security_question"`
	SecurityAnswer   string    `db:"security_answer"`
	CreatedAt        time.Time `db:"created_at"`
	UpdatedAt        time.Time `db:"updated_at"`
}
