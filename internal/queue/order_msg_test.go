package queue

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOrderPlacedMessageValidate(t *testing.T) {
	cases := []struct {
		name    string
		msg     OrderPlacedMessage
		wantErr bool
	}{
		{"valid", OrderPlacedMessage{OrderID: "O1", FullName: "Nguyễn Văn A"}, false},
		{"missing order id", OrderPlacedMessage{FullName: "Nguyễn Văn A"}, true},
		{"missing full name", OrderPlacedMessage{OrderID: "O1"}, true},
		{"empty", OrderPlacedMessage{}, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.msg.Validate()
			if tc.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestParseOrderEvent(t *testing.T) {
	msg, err := parseOrderEvent(map[string]interface{}{
		"order_id":  "O1",
		"full_name": "Nguyễn Văn A",
	})
	assert.NoError(t, err)
	assert.Equal(t, "O1", msg.OrderID)
	assert.Equal(t, "Nguyễn Văn A", msg.FullName)

	_, err = parseOrderEvent(map[string]interface{}{"order_id": "O1"})
	assert.Error(t, err)
}
