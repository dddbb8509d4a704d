// Package order implements the Order aggregate of the pizzeria.
//
// The package includes:
//   - Order: the aggregate root holding lines, status, payment and delivery details
//   - Line: a catalog item snapshot with quantity
//   - Status: the lifecycle state machine
//   - Payment, PaymentMethod, PaymentStatus and DeliveryType value objects
//   - OrderPlaced and OrderStatusChanged domain events
//
// Key business rules:
//   - an order has at least one line and a delivery address iff it is delivered
//   - the total is the exact sum of unit price × quantity, never rounded
//   - the estimated ready time is placement time plus the longest line preparation time
//   - statuses move forward only, Completed and Cancelled are terminal
package order
