// Package roster produces the list of players who are online.
package roster

import (
	"fmt"
	"strings"

	"github.com/dekarrin/cmdbook/internal/chat"
	"github.com/dekarrin/cmdbook/internal/host"
)

// EmptyMessage is sent instead of a list when nobody is online. This mostly
// happens for the console.
const EmptyMessage = "0 players are online."

// OnlineList gives the message listing every player in online, in the order
// given.
func OnlineList(online []host.Player) string {
	if len(online) == 0 {
		return EmptyMessage
	}

	names := make([]string, len(online))
	for i := range online {
		names[i] = online[i].Name()
	}

	var sb strings.Builder
	sb.WriteString(chat.Gray.String() + "Online (")
	sb.WriteString(fmt.Sprintf("%s%d", chat.Gray, len(online)))
	sb.WriteString(chat.Gray.String() + "): ")
	sb.WriteString(chat.White.String())
	sb.WriteString(strings.Join(names, ", "))

	return sb.String()
}

// SendOnlineList sends the list of online players to sink as a single
// message.
func SendOnlineList(online []host.Player, sink host.MessageSink) {
	sink.SendMessage(OnlineList(online))
}
