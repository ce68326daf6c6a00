// internal/websocket/handler/records.go
package handler

import (
	"context"
	"fmt"

	"insurance-service/internal/domain/claim"
	"insurance-service/internal/domain/policy"
	"insurance-service/internal/domain/user"
	wstypes "insurance-service/internal/domain/websocket"
	"insurance-service/internal/websocket"

	"go.uber.org/zap"
)

type ClaimLister interface {
	List(ctx context.Context, actor user.Actor, filters claim.ListFilters) ([]claim.Claim, error)
}

type PolicyLister interface {
	List(ctx context.Context, actor user.Actor, filters policy.ListFilters) ([]policy.Policy, error)
}

// RecordsHandler answers claim:list and policy:list over the socket, scoped
// to the connected user exactly like the HTTP listing.
type RecordsHandler struct {
	claims   ClaimLister
	policies PolicyLister
	logger   *zap.Logger
}

func NewRecordsHandler(claims ClaimLister, policies PolicyLister, logger *zap.Logger) *RecordsHandler {
	return &RecordsHandler{
		claims:   claims,
		policies: policies,
		logger:   logger,
	}
}

func (h *RecordsHandler) SupportedEvents() []wstypes.EventType {
	return []wstypes.EventType{
		wstypes.EventTypeClaimList,
		wstypes.EventTypePolicyList,
	}
}

func (h *RecordsHandler) HandleMessage(ctx context.Context, client *websocket.Client, msg *wstypes.WSMessage) error {
	var req wstypes.ListRequest
	if msg.Data != nil {
		if err := websocket.MapToStruct(msg.Data, &req); err != nil {
			return fmt.Errorf("invalid list request")
		}
	}

	switch msg.Type {
	case wstypes.EventTypeClaimList:
		return h.listClaims(ctx, client, req)
	case wstypes.EventTypePolicyList:
		return h.listPolicies(ctx, client, req)
	default:
		return fmt.Errorf("unsupported event type: %s", msg.Type)
	}
}

func (h *RecordsHandler) listClaims(ctx context.Context, client *websocket.Client, req wstypes.ListRequest) error {
	claims, err := h.claims.List(ctx, client.Actor(), claim.ListFilters{Status: claim.Status(req.Status)})
	if err != nil {
		h.logger.Warn("websocket claim list failed", zap.Int64("user_id", client.UserID()), zap.Error(err))
		return fmt.Errorf("failed to list claims")
	}

	client.SendMessage(wstypes.NewMessage(wstypes.EventTypeClaimList, map[string]interface{}{
		"claims": claims,
		"total":  len(claims),
	}))
	return nil
}

func (h *RecordsHandler) listPolicies(ctx context.Context, client *websocket.Client, req wstypes.ListRequest) error {
	policies, err := h.policies.List(ctx, client.Actor(), policy.ListFilters{Status: policy.Status(req.Status)})
	if err != nil {
		h.logger.Warn("websocket policy list failed", zap.Int64("user_id", client.UserID()), zap.Error(err))
		return fmt.Errorf("failed to list policies")
	}

	client.SendMessage(wstypes.NewMessage(wstypes.EventTypePolicyList, map[string]interface{}{
		"policies": policies,
		"total":    len(policies),
	}))
	return nil
}
