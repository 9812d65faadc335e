package handler

import (
	"net/http"

	"github.com/user/crm-service/internal/delivery/http/request"
	"github.com/user/crm-service/internal/delivery/http/response"
)

const (
	companyNotFound      = "Company not found"
	contactNotFound      = "Contact not found"
	leadNotFound         = "Lead not found"
	activityNotFound     = "Activity not found"
	reminderNotFound     = "Reminder not found"
	notificationNotFound = "Notification not found"
)

// --- Companies ---

func (h *Handler) HandleListCompanies(w http.ResponseWriter, r *http.Request) {
	companies, err := h.svc.Companies.List(r.Context())
	if err != nil {
		h.writeErr(w, r, err, companyNotFound)
		return
	}
	h.writeJSON(w, http.StatusOK, companies)
}

func (h *Handler) HandleCreateCompany(w http.ResponseWriter, r *http.Request) {
	var req request.Company
	if !h.decode(w, r, request.SchemaCompany, &req) {
		return
	}
	c, err := h.svc.Companies.Create(r.Context(), req.Entity(0))
	if err != nil {
		h.writeErr(w, r, err, companyNotFound)
		return
	}
	h.writeJSON(w, http.StatusCreated, c)
}

func (h *Handler) HandleGetCompany(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}
	c, err := h.svc.Companies.Get(r.Context(), id)
	if err != nil {
		h.writeErr(w, r, err, companyNotFound)
		return
	}
	h.writeJSON(w, http.StatusOK, c)
}

func (h *Handler) HandleUpdateCompany(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}
	var req request.Company
	if !h.decode(w, r, request.SchemaCompany, &req) {
		return
	}
	c, err := h.svc.Companies.Update(r.Context(), req.Entity(id))
	if err != nil {
		h.writeErr(w, r, err, companyNotFound)
		return
	}
	h.writeJSON(w, http.StatusOK, c)
}

func (h *Handler) HandleDeleteCompany(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}
	if err := h.svc.Companies.Delete(r.Context(), id); err != nil {
		h.writeErr(w, r, err, companyNotFound)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]string{"message": "Company deleted"})
}

// --- Contacts ---

func (h *Handler) HandleListContacts(w http.ResponseWriter, r *http.Request) {
	contacts, err := h.svc.Contacts.List(r.Context())
	if err != nil {
		h.writeErr(w, r, err, contactNotFound)
		return
	}
	h.writeJSON(w, http.StatusOK, contacts)
}

func (h *Handler) HandleCreateContact(w http.ResponseWriter, r *http.Request) {
	var req request.Contact
	if !h.decode(w, r, request.SchemaContact, &req) {
		return
	}
	c, err := h.svc.Contacts.Create(r.Context(), req.Entity(0))
	if err != nil {
		h.writeErr(w, r, err, contactNotFound)
		return
	}
	h.writeJSON(w, http.StatusCreated, c)
}

func (h *Handler) HandleUpdateContact(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}
	var req request.Contact
	if !h.decode(w, r, request.SchemaContact, &req) {
		return
	}
	c, err := h.svc.Contacts.Update(r.Context(), req.Entity(id))
	if err != nil {
		h.writeErr(w, r, err, contactNotFound)
		return
	}
	h.writeJSON(w, http.StatusOK, c)
}

func (h *Handler) HandleDeleteContact(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}
	if err := h.svc.Contacts.Delete(r.Context(), id); err != nil {
		h.writeErr(w, r, err, contactNotFound)
		return
	}
	h.writeJSON(w, http.StatusOK, response.Success{Success: true})
}

func (h *Handler) HandleExportContactsXLSX(w http.ResponseWriter, r *http.Request) {
	data, err := h.svc.Contacts.ExportXLSX(r.Context())
	if err != nil {
		h.writeErr(w, r, err, contactNotFound)
		return
	}
	h.writeFile(w, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", "contacts.xlsx", data)
}

// --- Leads ---

func (h *Handler) HandleListLeads(w http.ResponseWriter, r *http.Request) {
	leads, err := h.svc.Leads.List(r.Context())
	if err != nil {
		h.writeErr(w, r, err, leadNotFound)
		return
	}
	h.writeJSON(w, http.StatusOK, leads)
}

func (h *Handler) HandleRecentLeads(w http.ResponseWriter, r *http.Request) {
	leads, err := h.svc.Leads.Recent(r.Context())
	if err != nil {
		h.writeErr(w, r, err, leadNotFound)
		return
	}
	h.writeJSON(w, http.StatusOK, leads)
}

func (h *Handler) HandleCreateLead(w http.ResponseWriter, r *http.Request) {
	var req request.Lead
	if !h.decode(w, r, request.SchemaLead, &req) {
		return
	}
	l, err := h.svc.Leads.Create(r.Context(), req.Entity())
	if err != nil {
		h.writeErr(w, r, err, leadNotFound)
		return
	}
	h.writeJSON(w, http.StatusCreated, l)
}

func (h *Handler) HandleUpdateLeadStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}
	var req request.LeadStatus
	if !h.decode(w, r, request.SchemaLeadStatus, &req) {
		return
	}
	l, err := h.svc.Leads.UpdateStatus(r.Context(), id, req.Status)
	if err != nil {
		h.writeErr(w, r, err, leadNotFound)
		return
	}
	h.writeJSON(w, http.StatusOK, l)
}

// --- Activities ---

func (h *Handler) HandleListActivities(w http.ResponseWriter, r *http.Request) {
	activities, err := h.svc.Activities.List(r.Context())
	if err != nil {
		h.writeErr(w, r, err, activityNotFound)
		return
	}
	h.writeJSON(w, http.StatusOK, activities)
}

func (h *Handler) HandleCreateActivity(w http.ResponseWriter, r *http.Request) {
	var req request.Activity
	if !h.decode(w, r, request.SchemaActivity, &req) {
		return
	}
	a, err := h.svc.Activities.Create(r.Context(), req.Entity())
	if err != nil {
		h.writeErr(w, r, err, activityNotFound)
		return
	}
	h.writeJSON(w, http.StatusCreated, a)
}

func (h *Handler) HandleDeleteActivity(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}
	if err := h.svc.Activities.Delete(r.Context(), id); err != nil {
		h.writeErr(w, r, err, activityNotFound)
		return
	}
	h.writeJSON(w, http.StatusOK, response.Success{Success: true})
}

// --- Reminders ---

func (h *Handler) HandleListReminders(w http.ResponseWriter, r *http.Request) {
	reminders, err := h.svc.Reminders.List(r.Context())
	if err != nil {
		h.writeErr(w, r, err, reminderNotFound)
		return
	}
	h.writeJSON(w, http.StatusOK, reminders)
}

func (h *Handler) HandleCreateReminder(w http.ResponseWriter, r *http.Request) {
	var req request.Reminder
	if !h.decode(w, r, request.SchemaReminder, &req) {
		return
	}
	rm, err := h.svc.Reminders.Create(r.Context(), req.Task, req.Due)
	if err != nil {
		h.writeErr(w, r, err, reminderNotFound)
		return
	}
	h.writeJSON(w, http.StatusCreated, rm)
}

func (h *Handler) HandleSetReminderDone(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}
	var req request.ReminderDone
	if !h.decode(w, r, request.SchemaReminderDone, &req) {
		return
	}
	rm, err := h.svc.Reminders.SetDone(r.Context(), id, req.Done)
	if err != nil {
		h.writeErr(w, r, err, reminderNotFound)
		return
	}
	h.writeJSON(w, http.StatusOK, rm)
}

func (h *Handler) HandleDeleteReminder(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}
	if err := h.svc.Reminders.Delete(r.Context(), id); err != nil {
		h.writeErr(w, r, err, reminderNotFound)
		return
	}
	h.writeJSON(w, http.StatusOK, response.Success{Success: true})
}

// --- Notifications ---

func (h *Handler) HandleListNotifications(w http.ResponseWriter, r *http.Request) {
	notifications, err := h.svc.Notifications.List(r.Context())
	if err != nil {
		h.writeErr(w, r, err, notificationNotFound)
		return
	}
	h.writeJSON(w, http.StatusOK, notifications)
}

func (h *Handler) HandleCreateNotification(w http.ResponseWriter, r *http.Request) {
	var req request.Notification
	if !h.decode(w, r, request.SchemaNotification, &req) {
		return
	}
	n, err := h.svc.Notifications.Create(r.Context(), req.Entity())
	if err != nil {
		h.writeErr(w, r, err, notificationNotFound)
		return
	}
	h.writeJSON(w, http.StatusCreated, n)
}

func (h *Handler) HandleMarkNotificationRead(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}
	var req request.NotificationRead
	if !h.decode(w, r, request.SchemaNotificationRead, &req) {
		return
	}
	n, err := h.svc.Notifications.MarkRead(r.Context(), id, req.Read)
	if err != nil {
		h.writeErr(w, r, err, notificationNotFound)
		return
	}
	h.writeJSON(w, http.StatusOK, n)
}

// --- Compliances ---

func (h *Handler) HandleListCompliances(w http.ResponseWriter, r *http.Request) {
	items, err := h.svc.Compliances.List(r.Context())
	if err != nil {
		h.writeErr(w, r, err, "Compliance not found")
		return
	}
	h.writeJSON(w, http.StatusOK, items)
}

func (h *Handler) HandleCreateCompliance(w http.ResponseWriter, r *http.Request) {
	var req request.Compliance
	if !h.decode(w, r, request.SchemaCompliance, &req) {
		return
	}
	c, err := req.Entity()
	if err != nil {
		h.writeJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}
	created, err := h.svc.Compliances.Create(r.Context(), c)
	if err != nil {
		h.writeErr(w, r, err, "Compliance not found")
		return
	}
	h.writeJSON(w, http.StatusCreated, created)
}
