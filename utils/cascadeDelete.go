package utils

import (
	"adhya/models"
	"log"

	"gorm.io/gorm"
)

// PermanentDeleteCustomer removes a customer together with every Policy, GST
// and ITR record owned by it, and every attached document of the whole tree.
// Storage objects are deleted first, best-effort; a failed storage delete is
// logged and skipped. The database rows are then removed in one transaction.
func PermanentDeleteCustomer(db *gorm.DB, customerID uint) error {
	var policyIDs, gstIDs, itrIDs []uint
	if err := db.Model(&models.Policy{}).Where("customer_id = ?", customerID).Pluck("id", &policyIDs).Error; err != nil {
		return err
	}
	if err := db.Model(&models.GSTRecord{}).Where("customer_id = ?", customerID).Pluck("id", &gstIDs).Error; err != nil {
		return err
	}
	if err := db.Model(&models.ITRRecord{}).Where("customer_id = ?", customerID).Pluck("id", &itrIDs).Error; err != nil {
		return err
	}

	var documents []models.Document
	if err := db.Where("owner_type = ? AND owner_id = ?", "customer", customerID).
		Or("owner_type = ? AND owner_id IN ?", "policy", idsOrNone(policyIDs)).
		Or("owner_type = ? AND owner_id IN ?", "gst", idsOrNone(gstIDs)).
		Or("owner_type = ? AND owner_id IN ?", "itr", idsOrNone(itrIDs)).
		Find(&documents).Error; err != nil {
		return err
	}

	// External deletes happen before any row is touched
	for _, doc := range documents {
		if doc.PublicID == "" {
			continue
		}
		if err := RemoveObject(doc.PublicID); err != nil {
			log.Printf("Warning: failed to delete stored object %s: %v", doc.PublicID, err)
		}
	}

	return db.Transaction(func(tx *gorm.DB) error {
		docIDs := make([]uint, 0, len(documents))
		for _, doc := range documents {
			docIDs = append(docIDs, doc.ID)
		}
		if len(docIDs) > 0 {
			if err := tx.Unscoped().Delete(&models.Document{}, docIDs).Error; err != nil {
				return err
			}
		}
		if err := tx.Unscoped().Where("customer_id = ?", customerID).Delete(&models.Policy{}).Error; err != nil {
			return err
		}
		if err := tx.Unscoped().Where("customer_id = ?", customerID).Delete(&models.GSTRecord{}).Error; err != nil {
			return err
		}
		if err := tx.Unscoped().Where("customer_id = ?", customerID).Delete(&models.ITRRecord{}).Error; err != nil {
			return err
		}
		return tx.Unscoped().Delete(&models.Customer{}, customerID).Error
	})
}

// idsOrNone keeps "IN ?" valid when a customer has no child records.
func idsOrNone(ids []uint) []uint {
	if len(ids) == 0 {
		return []uint{0}
	}
	return ids
}
