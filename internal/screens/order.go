package screens

import (
	"context"
	"fmt"

	"github.com/muurk/uistate/internal/backend"
	"github.com/muurk/uistate/internal/result"
	"github.com/muurk/uistate/internal/uistate"
)

// DefaultOrderID is used when a screen is opened without an order.
const DefaultOrderID backend.OrderID = "order-1"

// OrderData is the Success payload of the order screen: the order plus the
// state of its cancel action.
type OrderData struct {
	Order  backend.Order
	Submit uistate.SubmitState
}

func (d OrderData) String() string {
	return fmt.Sprintf("order=%s cancel=%s", d.Order.ID, d.Submit)
}

// OrderInfoState is the state of the order screen.
type OrderInfoState = uistate.LoadState[OrderData]

// OrderInfo shows one order and lets the user cancel it.
type OrderInfo struct {
	base[OrderInfoState]
	id backend.OrderID
}

// NewOrderInfo creates the screen for order id and starts loading it.
func NewOrderInfo(deps Deps, id backend.OrderID) *OrderInfo {
	if id == "" {
		id = DefaultOrderID
	}
	s := &OrderInfo{
		base: newBase(KindOrder, deps, uistate.Initial[OrderData]()),
		id:   id,
	}
	s.Load()
	return s
}

// OrderID returns the order this screen was opened for.
func (s *OrderInfo) OrderID() backend.OrderID {
	return s.id
}

// Load fetches the order.
func (s *OrderInfo) Load() bool {
	return uistate.Load(s.Controller, uistate.LoadSpec[OrderInfoState, OrderData]{
		Op:  string(backend.OpFetchOrder),
		Get: uistate.Self[OrderData],
		Set: uistate.Replace[OrderData],
		Fetch: func(ctx context.Context) result.Result[OrderData] {
			return result.Map(s.svc.FetchOrder(ctx, s.id), func(o backend.Order) OrderData {
				return OrderData{Order: o}
			})
		},
	})
}

func (s *OrderInfo) submitSpec() uistate.SubmitSpec[OrderInfoState] {
	return uistate.SubmitSpec[OrderInfoState]{
		Op: string(backend.OpCancelOrder),
		Get: func(st OrderInfoState) (uistate.SubmitState, bool) {
			return st.Data.Submit, st.IsSuccess()
		},
		Set: func(st OrderInfoState, sub uistate.SubmitState) OrderInfoState {
			d := st.Data
			d.Submit = sub
			return st.WithData(d)
		},
		Call: func(ctx context.Context) result.Result[struct{}] {
			return s.svc.CancelOrder(ctx, s.id)
		},
	}
}

// Cancel cancels the order. Only valid once the order is loaded and no
// cancel is pending or unacknowledged.
func (s *OrderInfo) Cancel() bool {
	return uistate.Submit(s.Controller, s.submitSpec())
}

// AcknowledgeError dismisses a failed cancel so it can be tried again.
func (s *OrderInfo) AcknowledgeError() {
	st := s.State()
	if !st.IsSuccess() || !st.Data.Submit.IsError() {
		return
	}
	s.Set(s.submitSpec().Set(st, st.Data.Submit.Acknowledge()))
}

// Done reports whether the order was cancelled and the screen should close.
func (s *OrderInfo) Done() bool {
	st := s.State()
	return st.IsSuccess() && st.Data.Submit.IsSubmitted()
}
