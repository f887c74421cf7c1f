package usecase

import (
	"errors"
	"fmt"

	"github.com/riskibarqy/weekend-fixtures/internal/domain/geo"
	"github.com/riskibarqy/weekend-fixtures/internal/domain/weekend"
)

// NoticeKind classifies a non-blocking, user-visible message.
type NoticeKind string

const (
	NoticeDataUnavailable        NoticeKind = "data_unavailable"
	NoticeMalformedFixtures      NoticeKind = "malformed_fixtures"
	NoticeGeolocationDenied      NoticeKind = "geolocation_denied"
	NoticeGeolocationUnavailable NoticeKind = "geolocation_unavailable"
	NoticeGeolocationTimeout     NoticeKind = "geolocation_timeout"
)

// Notice is a recovered failure surfaced to the user. It never stops a render pass.
type Notice struct {
	Kind    NoticeKind
	Message string
}

func dataUnavailableNotice(month weekend.Month) Notice {
	return Notice{
		Kind:    NoticeDataUnavailable,
		Message: fmt.Sprintf("Aucune donnée disponible pour %s : liste vide.", month.Label()),
	}
}

func malformedFixturesNotice(month weekend.Month, skipped int) Notice {
	return Notice{
		Kind:    NoticeMalformedFixtures,
		Message: fmt.Sprintf("%d match(s) ignoré(s) en %s : données incomplètes.", skipped, month.Label()),
	}
}

func geolocationNotice(err error) Notice {
	switch {
	case errors.Is(err, geo.ErrLocationDenied):
		return Notice{Kind: NoticeGeolocationDenied, Message: "Position refusée : j'utilise la position par défaut."}
	case errors.Is(err, geo.ErrLocationTimeout):
		return Notice{Kind: NoticeGeolocationTimeout, Message: "Géolocalisation trop lente ou bloquée : affichage sur la position par défaut."}
	default:
		return Notice{Kind: NoticeGeolocationUnavailable, Message: "Géolocalisation indisponible : j'utilise la position par défaut."}
	}
}
