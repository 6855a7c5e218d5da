package vtuprov

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"vtunigeria/model"
)

// mockRepo fulfils every request instantly. It stands in for the upstream
// provider in dev and test environments.
type mockRepo struct{}

func NewMock() Repo { return &mockRepo{} }

func (m *mockRepo) Deliver(_ context.Context, req DeliverReq) (*DeliverResp, error) {
	resp := &DeliverResp{ProviderRef: "MOCK-" + uuid.NewString()}
	switch req.Category {
	case model.OrderElectricity, model.OrderEducation:
		resp.Token = numericToken()
	}
	return resp, nil
}

func (m *mockRepo) ValidateCustomer(_ context.Context, _, _ string) (*CustomerInfo, error) {
	return &CustomerInfo{Name: "John Doe Customer"}, nil
}

func numericToken() string {
	u := uuid.New()
	var sb strings.Builder
	for _, b := range u {
		sb.WriteByte('0' + b%10)
	}
	return sb.String()
}
