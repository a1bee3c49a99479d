package api

import (
	"time"

	"github.com/dekarrin/cmdbook/internal/host"
	"github.com/dekarrin/cmdbook/server/dao"
)

// note that these are *not* the DAO models; those are distinct and closer to
// the DB format they are in. Rather these are the models that are received from
// and sent to the client.

type InfoModel struct {
	Version struct {
		Server      string `json:"server"`
		CommandBook string `json:"commandbook"`
	} `json:"version"`
}

// LoginResponse carries a new token and the permission nodes the account's
// role grants.
type LoginResponse struct {
	Token       string   `json:"token"`
	UserID      string   `json:"user_id"`
	Permissions []string `json:"permissions"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type UserModel struct {
	URI            string `json:"uri"`
	ID             string `json:"id,omitempty"`
	Username       string `json:"username,omitempty"`
	Password       string `json:"password,omitempty"`
	Email          string `json:"email,omitempty"`
	Role           string `json:"role,omitempty"`
	Created        string `json:"created,omitempty"`
	Modified       string `json:"modified,omitempty"`
	LastLogoutTime string `json:"last_logout,omitempty"`
	LastLoginTime  string `json:"last_login,omitempty"`

	// Permissions and Online are only ever sent to the client.
	Permissions []string `json:"permissions,omitempty"`
	Online      bool     `json:"online"`
}

// UserUpdateRequest changes an account. Properties left out are not changed.
type UserUpdateRequest struct {
	Username *string `json:"username,omitempty"`
	Password *string `json:"password,omitempty"`
	Email    *string `json:"email,omitempty"`
	Role     *string `json:"role,omitempty"`
}

type PlayerListModel struct {
	Message string   `json:"message"`
	Players []string `json:"players"`
}

type PlayerModel struct {
	URI    string   `json:"uri"`
	Name   string   `json:"name"`
	ID     string   `json:"id,omitempty"`
	Groups []string `json:"groups,omitempty"`
	X      float64  `json:"x"`
	Y      float64  `json:"y"`
	Z      float64  `json:"z"`
	Yaw    float64  `json:"yaw"`
}

type DirectionModel struct {
	Player    string `json:"player"`
	Direction string `json:"direction"`
}

type MessagesModel struct {
	Player   string   `json:"player"`
	Messages []string `json:"messages"`
}

type TimeModel struct {
	Tick int64  `json:"tick"`
	Time string `json:"time"`
}

type TimeSetRequest struct {
	Tick *int64 `json:"tick"`
}

type FormatRequest struct {
	Text string `json:"text"`
}

type FormatModel struct {
	Text  string `json:"text"`
	ANSI  string `json:"ansi"`
	Plain string `json:"plain"`
}

type ItemModel struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	DisplayName string `json:"display_name"`
	Allowed     bool   `json:"allowed"`
}

// GiveRequest is a request to give items. Amount defaults to 1 if not given;
// -1 gives an unlimited stack.
type GiveRequest struct {
	Targets []string `json:"targets"`
	Item    string   `json:"item"`
	Amount  *int     `json:"amount,omitempty"`
	Drop    bool     `json:"drop,omitempty"`
}

type GiveModel struct {
	URI      string   `json:"uri"`
	ID       string   `json:"id"`
	UserID   string   `json:"user_id"`
	Targets  []string `json:"targets"`
	Item     int      `json:"item"`
	Amount   int      `json:"amount"`
	Infinite bool     `json:"infinite,omitempty"`
	Drop     bool     `json:"drop,omitempty"`
	Created  string   `json:"created"`
}

type GiveResultModel struct {
	Give     GiveModel `json:"give"`
	Messages []string  `json:"messages"`
}

func userModel(u dao.User) UserModel {
	m := UserModel{
		URI:            PathPrefix + "/users/" + u.ID.String(),
		ID:             u.ID.String(),
		Username:       u.Username,
		Role:           u.Role.String(),
		Created:        u.Created.Format(time.RFC3339),
		Modified:       u.Modified.Format(time.RFC3339),
		LastLogoutTime: u.LastLogoutTime.Format(time.RFC3339),
		LastLoginTime:  u.LastLoginTime.Format(time.RFC3339),
	}
	if u.Email != nil {
		m.Email = u.Email.Address
	}
	return m
}

func giveModel(g dao.Give) GiveModel {
	return GiveModel{
		URI:      PathPrefix + "/gives/" + g.ID.String(),
		ID:       g.ID.String(),
		UserID:   g.UserID.String(),
		Targets:  g.Targets,
		Item:     int(g.Stack.Type),
		Amount:   g.Stack.Amount,
		Infinite: g.Stack.Amount == host.Unlimited,
		Drop:     g.Drop,
		Created:  g.Created.Format(time.RFC3339),
	}
}
