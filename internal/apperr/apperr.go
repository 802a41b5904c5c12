// Package apperr содержит базовые виды ошибок, общие для всех сервисов.
// Сервисы оборачивают их своими sentinel-ошибками через %w, транспорт
// отображает вид ошибки в код ответа через Kind.
package apperr

import "errors"

var (
	InvalidOrder                = errors.New("invalid order")
	InvalidRequest              = errors.New("invalid request")
	NotFound                    = errors.New("not found")
	Conflict                    = errors.New("conflict")
	VersionConflict             = errors.New("version conflict")
	RouteAlreadyClaimed         = errors.New("route already claimed")
	ClaimExpired                = errors.New("claim expired")
	NotClaimHolder              = errors.New("not claim holder")
	AlreadySettled              = errors.New("already settled")
	SequencingViolation         = errors.New("sequencing violation")
	InvalidTransition           = errors.New("invalid transition")
	DistanceProviderUnavailable = errors.New("distance provider unavailable")
)

// Коды ошибок API.
const (
	KindInvalidOrder        = "invalid_order"
	KindInvalidRequest      = "invalid_request"
	KindNotFound            = "not_found"
	KindConflict            = "conflict"
	KindRouteAlreadyClaimed = "route_already_claimed"
	KindClaimExpired        = "claim_expired"
	KindNotClaimHolder      = "not_claim_holder"
	KindAlreadySettled      = "already_settled"
	KindSequencingViolation = "sequencing_violation"
	KindInvalidTransition   = "invalid_transition"
	KindDistanceUnavailable = "distance_provider_unavailable"
	KindInternal            = "internal"
)

var kinds = []struct {
	err  error
	kind string
}{
	{InvalidOrder, KindInvalidOrder},
	{InvalidRequest, KindInvalidRequest},
	{NotFound, KindNotFound},
	{RouteAlreadyClaimed, KindRouteAlreadyClaimed},
	{ClaimExpired, KindClaimExpired},
	{NotClaimHolder, KindNotClaimHolder},
	{AlreadySettled, KindAlreadySettled},
	{SequencingViolation, KindSequencingViolation},
	{InvalidTransition, KindInvalidTransition},
	{DistanceProviderUnavailable, KindDistanceUnavailable},
	{VersionConflict, KindConflict},
	{Conflict, KindConflict},
}

// Kind возвращает код ошибки API. Неизвестные ошибки - internal.
func Kind(err error) string {
	if err == nil {
		return ""
	}
	for _, k := range kinds {
		if errors.Is(err, k.err) {
			return k.kind
		}
	}
	return KindInternal
}
