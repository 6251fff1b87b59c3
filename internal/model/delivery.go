package model

import "time"

// Delivery は注文の配達を表す。
// DeliverymanIDは未割り当ての場合nil。配達員が削除されても値は残る。
type Delivery struct {
	ID                int64      `json:"id"`
	OrderID           int64      `json:"order_id"`
	DeliverymanID     *int64     `json:"deliveryman_id"`
	DeliveryStatus    string     `json:"delivery_status"`
	DeliveryAddress   string     `json:"delivery_address"`
	DeliveryTimestamp *time.Time `json:"delivery_timestamp"`
}

// DeliveryInput は配達作成・更新リクエストの入力。
type DeliveryInput struct {
	OrderID           *int64     `json:"order_id"`
	DeliverymanID     *int64     `json:"deliveryman_id"`
	DeliveryStatus    *string    `json:"delivery_status"`
	DeliveryAddress   *string    `json:"delivery_address"`
	DeliveryTimestamp *time.Time `json:"delivery_timestamp"`
}

// Validate は作成時の必須フィールドを検証する。
func (in DeliveryInput) Validate() error {
	var m missingFields
	m.require(in.OrderID != nil, "order_id")
	return m.err()
}

// ApplyTo は指定されたフィールドだけをdに上書きする。
func (in DeliveryInput) ApplyTo(d *Delivery) {
	setInt64(&d.OrderID, in.OrderID)
	if in.DeliverymanID != nil {
		id := *in.DeliverymanID
		d.DeliverymanID = &id
	}
	setString(&d.DeliveryStatus, in.DeliveryStatus)
	setString(&d.DeliveryAddress, in.DeliveryAddress)
	if in.DeliveryTimestamp != nil {
		ts := *in.DeliveryTimestamp
		d.DeliveryTimestamp = &ts
	}
}
