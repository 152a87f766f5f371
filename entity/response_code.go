package entity

import "fmt"

// ResponseCode is the numeric result code of a payment notification.
type ResponseCode int

const (
	// ResponseUnknown marks a decoded payload without a responseCode field.
	ResponseUnknown           ResponseCode = -1
	ResponseSuccess           ResponseCode = 0
	ResponseFailure           ResponseCode = 5
	ResponseCancelled         ResponseCode = 17
	ResponseOpen              ResponseCode = 60
	ResponseServerUnreachable ResponseCode = 90
	ResponseExpired           ResponseCode = 97
)

var responseMessages = map[ResponseCode]string{
	0:  "Payment successful",
	2:  "Authorization limit on the card exceeded, the customer should call the bank",
	3:  "Invalid merchant contract",
	5:  "Do not honor, authorization refused",
	12: "Invalid transaction, check the parameters sent in the request",
	14: "Invalid card number or card security code",
	17: "Payment cancelled by the customer",
	24: "Invalid status",
	25: "Transaction not found in database",
	30: "Invalid format",
	34: "Fraud suspicion",
	40: "Operation not allowed to this merchant",
	60: "Pending transaction",
	63: "Security breach detected, transaction stopped",
	75: "Number of attempts to enter the card number exceeded",
	90: "Server unreachable, the transaction was aborted",
	94: "Duplicate transaction",
	97: "Request time-out, transaction refused",
	99: "Payment page temporarily unavailable",
}

// Describe returns the message of a response code, or a generated message for unknown codes.
func Describe(code int) string {
	if message, ok := responseMessages[ResponseCode(code)]; ok {
		return message
	}
	return fmt.Sprintf("unknown response code %d", code)
}

func (c ResponseCode) String() string {
	return Describe(int(c))
}

func (c ResponseCode) IsSuccess() bool {
	return c == ResponseSuccess
}

// IsPending reports codes after which the final outcome is still to come.
func (c ResponseCode) IsPending() bool {
	return c == ResponseOpen || c == ResponseServerUnreachable
}
