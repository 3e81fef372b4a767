package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/apskaita-api/internal/domain"
	"github.com/jhoicas/apskaita-api/internal/domain/entity"
	"github.com/jhoicas/apskaita-api/internal/domain/repository"
)

var (
	_ repository.ReceiptRepository  = (*receiptRepo)(nil)
	_ repository.LineItemRepository = (*lineItemRepo)(nil)
	_ repository.CategoryRepository = (*categoryRepo)(nil)
	_ repository.ReportRepository   = (*reportRepo)(nil)
)

func notFound(op string, id int64) error {
	return fmt.Errorf("%s %d: %w", op, id, domain.ErrNotFound)
}

type receiptRepo struct{ acc access }

func (r *receiptRepo) Create(_ context.Context, receipt *entity.Receipt) error {
	return r.acc.write(func(st *state) error {
		st.lastReceiptID++
		receipt.ID = st.lastReceiptID
		st.receipts[receipt.ID] = *receipt
		return nil
	})
}

func (r *receiptRepo) GetByID(_ context.Context, id int64) (*entity.Receipt, error) {
	var out *entity.Receipt
	err := r.acc.read(func(st *state) error {
		rc, ok := st.receipts[id]
		if !ok {
			return notFound("get receipt", id)
		}
		out = &rc
		return nil
	})
	return out, err
}

func (r *receiptRepo) List(_ context.Context, filter entity.ReceiptFilter) ([]*entity.Receipt, error) {
	list := []*entity.Receipt{}
	err := r.acc.read(func(st *state) error {
		for _, rc := range st.receipts {
			if filter.From != nil && rc.Date.Before(*filter.From) {
				continue
			}
			if filter.To != nil && rc.Date.After(*filter.To) {
				continue
			}
			rc := rc
			list = append(list, &rc)
		}
		return nil
	})
	sort.Slice(list, func(i, j int) bool {
		a, b := list[i], list[j]
		if !a.Date.Equal(b.Date) {
			return a.Date.Before(b.Date)
		}
		if a.Store != b.Store {
			return a.Store < b.Store
		}
		return a.ID < b.ID
	})
	return list, err
}

func (r *receiptRepo) Update(_ context.Context, receipt *entity.Receipt) error {
	return r.acc.write(func(st *state) error {
		if _, ok := st.receipts[receipt.ID]; !ok {
			return notFound("update receipt", receipt.ID)
		}
		st.receipts[receipt.ID] = *receipt
		return nil
	})
}

// Delete falla si quedan líneas del cheque, igual que la llave foránea en PostgreSQL.
func (r *receiptRepo) Delete(_ context.Context, id int64) error {
	return r.acc.write(func(st *state) error {
		if _, ok := st.receipts[id]; !ok {
			return notFound("delete receipt", id)
		}
		for _, li := range st.items {
			if li.ReceiptID == id {
				return fmt.Errorf("delete receipt %d: line item %d still references it", id, li.ID)
			}
		}
		delete(st.receipts, id)
		return nil
	})
}

type lineItemRepo struct{ acc access }

func (r *lineItemRepo) Create(_ context.Context, item *entity.LineItem) error {
	return r.acc.write(func(st *state) error {
		if _, ok := st.receipts[item.ReceiptID]; !ok {
			return fmt.Errorf("insert line item: receipt %d: %w", item.ReceiptID, domain.ErrNotFound)
		}
		st.lastItemID++
		item.ID = st.lastItemID
		stored := *item
		stored.CategoryName = ""
		st.items[item.ID] = stored
		return nil
	})
}

func (r *lineItemRepo) GetByID(_ context.Context, id int64) (*entity.LineItem, error) {
	var out *entity.LineItem
	err := r.acc.read(func(st *state) error {
		li, ok := st.items[id]
		if !ok {
			return notFound("get line item", id)
		}
		li.CategoryName = st.categories[li.CategoryID].Name
		out = &li
		return nil
	})
	return out, err
}

func (r *lineItemRepo) List(_ context.Context, filter entity.LineItemFilter) ([]*entity.LineItem, error) {
	list := []*entity.LineItem{}
	err := r.acc.read(func(st *state) error {
		for _, li := range st.items {
			if filter.ReceiptID > 0 && li.ReceiptID != filter.ReceiptID {
				continue
			}
			if filter.CategoryID > 0 && li.CategoryID != filter.CategoryID {
				continue
			}
			li := li
			li.CategoryName = st.categories[li.CategoryID].Name
			list = append(list, &li)
		}
		return nil
	})
	sort.Slice(list, func(i, j int) bool {
		if list[i].Description != list[j].Description {
			return list[i].Description < list[j].Description
		}
		return list[i].ID < list[j].ID
	})
	return list, err
}

func (r *lineItemRepo) Update(_ context.Context, item *entity.LineItem) error {
	return r.acc.write(func(st *state) error {
		current, ok := st.items[item.ID]
		if !ok {
			return notFound("update line item", item.ID)
		}
		current.Description = item.Description
		current.Quantity = item.Quantity
		current.Price = item.Price
		current.CategoryID = item.CategoryID
		st.items[item.ID] = current
		return nil
	})
}

func (r *lineItemRepo) Delete(_ context.Context, id int64) error {
	return r.acc.write(func(st *state) error {
		if _, ok := st.items[id]; !ok {
			return notFound("delete line item", id)
		}
		delete(st.items, id)
		return nil
	})
}

func (r *lineItemRepo) DeleteByReceipt(_ context.Context, receiptID int64) (int64, error) {
	var n int64
	err := r.acc.write(func(st *state) error {
		for id, li := range st.items {
			if li.ReceiptID == receiptID {
				delete(st.items, id)
				n++
			}
		}
		return nil
	})
	return n, err
}

type categoryRepo struct{ acc access }

func (r *categoryRepo) Create(_ context.Context, category *entity.Category) error {
	return r.acc.write(func(st *state) error {
		st.lastCategoryID++
		category.ID = st.lastCategoryID
		st.categories[category.ID] = *category
		return nil
	})
}

func (r *categoryRepo) GetByID(_ context.Context, id int64) (*entity.Category, error) {
	var out *entity.Category
	err := r.acc.read(func(st *state) error {
		c, ok := st.categories[id]
		if !ok {
			return notFound("get category", id)
		}
		out = &c
		return nil
	})
	return out, err
}

func (r *categoryRepo) List(_ context.Context) ([]*entity.Category, error) {
	var list []*entity.Category
	_ = r.acc.read(func(st *state) error {
		list = sortedCategories(st)
		return nil
	})
	return list, nil
}

func (r *categoryRepo) Update(_ context.Context, category *entity.Category) error {
	return r.acc.write(func(st *state) error {
		if _, ok := st.categories[category.ID]; !ok {
			return notFound("update category", category.ID)
		}
		st.categories[category.ID] = *category
		return nil
	})
}

func (r *categoryRepo) Delete(_ context.Context, id int64) error {
	return r.acc.write(func(st *state) error {
		if _, ok := st.categories[id]; !ok {
			return notFound("delete category", id)
		}
		delete(st.categories, id)
		return nil
	})
}

func sortedCategories(st *state) []*entity.Category {
	list := make([]*entity.Category, 0, len(st.categories))
	for _, c := range st.categories {
		c := c
		list = append(list, &c)
	}
	sort.Slice(list, func(i, j int) bool {
		if list[i].Name != list[j].Name {
			return list[i].Name < list[j].Name
		}
		return list[i].ID < list[j].ID
	})
	return list
}

type reportRepo struct{ acc access }

func (r *reportRepo) TotalSpend(_ context.Context, period entity.DateRange) (decimal.Decimal, error) {
	total := decimal.Zero
	err := r.acc.read(func(st *state) error {
		for _, li := range st.items {
			rc, ok := st.receipts[li.ReceiptID]
			if ok && period.Contains(rc.Date) {
				total = total.Add(li.Total())
			}
		}
		return nil
	})
	return total, err
}

func (r *reportRepo) SpendByCategory(_ context.Context, period entity.DateRange) ([]entity.CategorySpend, error) {
	var out []entity.CategorySpend
	err := r.acc.read(func(st *state) error {
		cats := sortedCategories(st)
		byCategory := make(map[int64]*entity.CategorySpend, len(cats))
		out = make([]entity.CategorySpend, len(cats))
		for i, c := range cats {
			out[i] = entity.CategorySpend{CategoryID: c.ID, CategoryName: c.Name, Total: decimal.Zero}
			byCategory[c.ID] = &out[i]
		}
		for _, li := range st.items {
			row, ok := byCategory[li.CategoryID]
			if !ok {
				continue
			}
			rc, ok := st.receipts[li.ReceiptID]
			if !ok || !period.Contains(rc.Date) {
				continue
			}
			row.Total = row.Total.Add(li.Total())
			row.Count++
		}
		return nil
	})
	return out, err
}
