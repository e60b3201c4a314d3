// Package proto defines the message kinds and payload codecs exchanged over
// kernel IPC. Payloads are hand-packed little-endian byte slices; every
// decoder returns ok=false on a malformed length instead of panicking.
package proto

// Kind identifies the message type carried in kernel.Message.Kind.
type Kind uint16

const (
	MsgLogLine Kind = iota + 1
	MsgError
	MsgSerialWrite
	MsgConsoleLine
	MsgControlCode
	MsgTickSubscribe
	MsgSecondTick
	MsgVFSList
	MsgVFSListResp
	MsgVFSStat
	MsgVFSStatResp
	MsgVFSRead
	MsgVFSReadResp
	MsgVFSRemove
	MsgVFSRemoveResp
	MsgDataGet
	MsgDataGetResp
	MsgDataSet
	MsgDataSetResp
)

func (k Kind) String() string {
	switch k {
	case MsgLogLine:
		return "log_line"
	case MsgError:
		return "error"
	case MsgSerialWrite:
		return "serial_write"
	case MsgConsoleLine:
		return "console_line"
	case MsgControlCode:
		return "control_code"
	case MsgTickSubscribe:
		return "tick_subscribe"
	case MsgSecondTick:
		return "second_tick"
	case MsgVFSList:
		return "vfs_list"
	case MsgVFSListResp:
		return "vfs_list_resp"
	case MsgVFSStat:
		return "vfs_stat"
	case MsgVFSStatResp:
		return "vfs_stat_resp"
	case MsgVFSRead:
		return "vfs_read"
	case MsgVFSReadResp:
		return "vfs_read_resp"
	case MsgVFSRemove:
		return "vfs_remove"
	case MsgVFSRemoveResp:
		return "vfs_remove_resp"
	case MsgDataGet:
		return "data_get"
	case MsgDataGetResp:
		return "data_get_resp"
	case MsgDataSet:
		return "data_set"
	case MsgDataSetResp:
		return "data_set_resp"
	default:
		return "unknown"
	}
}

// ErrCode is a generic error category for MsgError responses.
type ErrCode uint16

const (
	ErrUnknown ErrCode = iota
	ErrBadMessage
	ErrNotFound
	ErrBusy
	ErrTooLarge
	ErrInternal
)

func (c ErrCode) String() string {
	switch c {
	case ErrUnknown:
		return "unknown"
	case ErrBadMessage:
		return "bad_message"
	case ErrNotFound:
		return "not_found"
	case ErrBusy:
		return "busy"
	case ErrTooLarge:
		return "too_large"
	case ErrInternal:
		return "internal"
	default:
		return "unknown"
	}
}
