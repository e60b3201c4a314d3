// Package time is the client side of the time service.
package time

import (
	"fmt"

	"github.com/ZzubbuzZ/Smoothie/smoothie/kernel"
	"github.com/ZzubbuzZ/Smoothie/smoothie/proto"
)

// SubscribeSeconds asks the time service to deliver MsgSecondTick to
// deliverCap once per second. deliverCap must carry the send right.
func SubscribeSeconds(ctx *kernel.Context, timeCap, deliverCap kernel.Capability) error {
	if ctx == nil {
		return fmt.Errorf("time subscribe: nil context")
	}
	res := ctx.SendToCapRetry(timeCap, uint16(proto.MsgTickSubscribe),
		proto.TickSubscribePayload(), deliverCap, 16)
	if res != kernel.SendOK {
		return fmt.Errorf("time subscribe: %s", res)
	}
	return nil
}
