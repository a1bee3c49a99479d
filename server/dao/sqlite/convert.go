package sqlite

import (
	"encoding/base64"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/dekarrin/cmdbook/internal/host"
	"github.com/dekarrin/cmdbook/server/dao"
	"github.com/dekarrin/rezi"
	"github.com/google/uuid"
)

func convertToDB_UUID(u uuid.UUID) string {
	return u.String()
}

func convertFromDB_UUID(s string, target *uuid.UUID) error {
	u, err := uuid.Parse(s)
	if err != nil {
		return err
	}
	*target = u
	return nil
}

func convertToDB_Email(email *mail.Address) string {
	if email == nil {
		return ""
	}
	return email.Address
}

func convertFromDB_Email(s string, target **mail.Address) error {
	if s == "" {
		*target = nil
		return nil
	}

	email, err := mail.ParseAddress(s)
	if err != nil {
		return err
	}
	*target = email
	return nil
}

func convertToDB_Role(r dao.Role) int64 {
	return int64(r)
}

func convertFromDB_Role(i int64, target *dao.Role) error {
	r := dao.Role(i)
	if _, err := dao.ParseRole(r.String()); err != nil {
		return err
	}
	*target = r
	return nil
}

// times are stored as unix seconds. The zero time is stored as 0.
func convertToDB_Time(t time.Time) int64 {
	if t.IsZero() {
		return 0
	}
	return t.Unix()
}

func convertFromDB_Time(i int64, target *time.Time) error {
	if i == 0 {
		*target = time.Time{}
		return nil
	}
	if i < 0 {
		return fmt.Errorf("negative timestamp")
	}
	*target = time.Unix(i, 0)
	return nil
}

func convertToDB_ByteSlice(b []byte) string {
	return base64.StdEncoding.EncodeToString(b)
}

func convertFromDB_ByteSlice(s string, target *[]byte) error {
	data, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return err
	}
	*target = data
	return nil
}

// stacks are stored as the base64 of their REZI encoding.
func convertToDB_ItemStack(s host.ItemStack) string {
	return convertToDB_ByteSlice(rezi.EncBinary(s))
}

func convertFromDB_ItemStack(s string, target *host.ItemStack) error {
	var data []byte
	if err := convertFromDB_ByteSlice(s, &data); err != nil {
		return err
	}

	var stack host.ItemStack
	if _, err := rezi.DecBinary(data, &stack); err != nil {
		return err
	}
	*target = stack
	return nil
}

// world.ValidatePlayerName rejects commas, so targets are stored as a single
// comma-separated string.
func convertToDB_Targets(targets []string) string {
	return strings.Join(targets, ",")
}

func convertFromDB_Targets(s string, target *[]string) error {
	if s == "" {
		*target = nil
		return nil
	}
	*target = strings.Split(s, ",")
	return nil
}

func convertToDB_Bool(b bool) int64 {
	if b {
		return 1
	}
	return 0
}

func convertFromDB_Bool(i int64, target *bool) error {
	switch i {
	case 0:
		*target = false
	case 1:
		*target = true
	default:
		return fmt.Errorf("not 0 or 1: %d", i)
	}
	return nil
}
