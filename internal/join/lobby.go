package join

import (
	"github.com/wetstraat/kamerdata/internal/model"
	"github.com/wetstraat/kamerdata/internal/rowsource"
)

// BuildLobby maps the lobby register rows straight through; the table joins
// with nothing else.
func BuildLobby(rows []rowsource.Row) *model.LobbyData {
	out := &model.LobbyData{Lobby: []model.Lobby{}}
	for _, row := range rows {
		out.Lobby = append(out.Lobby, model.Lobby{
			Name:      row.Get(rowsource.LobbyName),
			Contacts:  row.Get(rowsource.LobbyContacts),
			Interests: row.Get(rowsource.LobbyInterests),
			URL:       row.Get(rowsource.LobbyURL),
		})
	}
	return out
}
