// Package postgres contains the concrete implementation of the persistence layer using GORM and PostgreSQL.
package postgres

import (
	"emotionai/internal/domain/service"
	"emotionai/internal/errors"
)

// fieldCodec applies the field cipher at the entity<->model mapping boundary:
// encode before write, decode after read. Every repository that persists a
// confidential column goes through it, so the rest of the codebase only ever
// sees plaintext. Empty values pass through unencrypted; NULL columns stay NULL.
type fieldCodec struct {
	cipher service.FieldCipher
}

func newFieldCodec(cipher service.FieldCipher) fieldCodec {
	return fieldCodec{cipher: cipher}
}

// encode encrypts an outbound column value.
func (c fieldCodec) encode(value string) (string, error) {
	out, err := c.cipher.Encrypt(value)
	if err != nil {
		return "", errors.Wrap(err, "failed to encrypt field")
	}

	return out, nil
}

// encodePtr encrypts an outbound nullable column value, keeping nil as nil.
func (c fieldCodec) encodePtr(value *string) (*string, error) {
	if value == nil {
		return nil, nil
	}

	out, err := c.encode(*value)
	if err != nil {
		return nil, err
	}

	return &out, nil
}

// decode decrypts an inbound column value. Failures carry the table, column
// and record id so a corrupted row is identifiable without exposing its content.
func (c fieldCodec) decode(table, column string, id int64, value string) (string, error) {
	out, err := c.cipher.Decrypt(value)
	if err != nil {
		return "", errors.Wrapf(err, "failed to decrypt %s.%s for record %d", table, column, id)
	}

	return out, nil
}

// decodePtr decrypts an inbound nullable column value, keeping nil as nil.
func (c fieldCodec) decodePtr(table, column string, id int64, value *string) (*string, error) {
	if value == nil {
		return nil, nil
	}

	out, err := c.decode(table, column, id, *value)
	if err != nil {
		return nil, err
	}

	return &out, nil
}
