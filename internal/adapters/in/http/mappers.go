package http

import (
	"errors"
	"time"

	"pizzeria/internal/core/application/usecases/queries"
	"pizzeria/internal/core/domain/model/catalog"
	"pizzeria/internal/core/domain/model/kernel"
	"pizzeria/internal/core/domain/model/order"
	"pizzeria/internal/generated/servers"
)

func money(m kernel.Money) servers.Money {
	return m.Amount().StringFixed(2)
}

func toCatalogItem(item *catalog.Item) servers.CatalogItem {
	ingredients := item.Ingredients()
	if ingredients == nil {
		ingredients = []string{}
	}
	return servers.CatalogItem{
		Id:                 item.ID(),
		Name:               item.Name(),
		Description:        item.Description(),
		Ingredients:        ingredients,
		Size:               servers.Size(item.Size().String()),
		DiameterCm:         item.Size().Diameter(),
		Price:              money(item.Price()),
		PreparationMinutes: minutes(item.PreparationTime()),
		Category:           servers.Category(item.Category().String()),
		Available:          item.IsAvailable(),
	}
}

func toCatalogDetails(body servers.CatalogItemInput) (catalog.Details, error) {
	size, sizeErr := catalog.ParseSize(string(body.Size))
	category, categoryErr := catalog.ParseCategory(string(body.Category))
	price, priceErr := kernel.MoneyFromString(body.Price)
	if err := errors.Join(sizeErr, categoryErr, priceErr); err != nil {
		return catalog.Details{}, err
	}

	details := catalog.Details{
		Name:            body.Name,
		Description:     deref(body.Description),
		Size:            size,
		Price:           price,
		PreparationTime: time.Duration(body.PreparationMinutes) * time.Minute,
		Category:        category,
		Available:       body.Available,
	}
	if body.Ingredients != nil {
		details.Ingredients = *body.Ingredients
	}
	return details, nil
}

func toOrder(o *order.Order) servers.Order {
	lines := make([]servers.OrderLine, 0, len(o.Lines()))
	for _, line := range o.Lines() {
		lines = append(lines, servers.OrderLine{
			CatalogItemId:      line.CatalogItemID(),
			Name:               line.Name(),
			UnitPrice:          money(line.UnitPrice()),
			Quantity:           line.Quantity(),
			PreparationMinutes: minutes(line.PreparationTime()),
			Total:              money(line.Total()),
		})
	}

	payment := o.Payment()
	response := servers.Order{
		Id:               o.ID().Bytes(),
		Status:           servers.OrderStatus(o.Status().String()),
		DeliveryType:     servers.DeliveryType(o.DeliveryType().String()),
		PlacedAt:         o.PlacedAt().UTC(),
		EstimatedReadyAt: o.EstimatedReadyAt().UTC(),
		Total:            money(o.Total()),
		ItemCount:        o.ItemCount(),
		Lines:            lines,
		Payment: servers.Payment{
			Id:     payment.ID(),
			Method: servers.PaymentMethod(payment.Method().String()),
			Amount: money(payment.Amount()),
			Status: payment.Status().String(),
		},
	}
	if id := o.CustomerID(); id != nil {
		customerID := id.Bytes()
		response.CustomerId = &customerID
	}
	if address := o.DeliveryAddress(); address != "" {
		response.DeliveryAddress = &address
	}
	if notes := o.Notes(); notes != "" {
		response.Notes = &notes
	}
	return response
}

func toOrders(orders []*order.Order) []servers.Order {
	response := make([]servers.Order, len(orders))
	for i, o := range orders {
		response[i] = toOrder(o)
	}
	return response
}

func toStatistics(resp queries.GetStatisticsQueryResponse) servers.Statistics {
	stats := resp.Statistics

	byStatus := make(map[string]int, len(order.Statuses()))
	for status, count := range stats.StatusCounts() {
		byStatus[status.String()] = count
	}

	popular := make([]servers.PopularItem, len(resp.PopularItems))
	for i, item := range resp.PopularItems {
		popular[i] = servers.PopularItem{
			CatalogItemId: item.CatalogItemID,
			Name:          item.Name,
			Occurrences:   item.Occurrences,
			Quantity:      item.Quantity,
		}
	}

	return servers.Statistics{
		TotalOrders:    stats.TotalOrders,
		TodayOrders:    stats.TodayOrders,
		ActiveOrders:   stats.ActiveOrders,
		TotalRevenue:   money(stats.TotalRevenue),
		TodayRevenue:   money(stats.TodayRevenue),
		OrdersByStatus: byStatus,
		PopularItems:   popular,
		GeneratedAt:    stats.GeneratedAt.UTC(),
	}
}
