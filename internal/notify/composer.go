package notify

import (
	"fmt"
	"strings"

	"campuscare/internal/models"
)

// Message is a composed notification for a single addressee. Composition is
// pure template rendering; delivery and logging happen in the dispatcher.
type Message struct {
	RecipientID    int64
	RecipientEmail string
	Subject        string
	Body           string
	AttachmentPath string
}

// StatusUpdate builds the notifications triggered by a request status change:
// always one message for the requester and, when a worker is assigned, a
// second message phrased for the worker. The evidence path, when present,
// rides along as a candidate attachment on the requester message.
func StatusUpdate(req *models.Request, status models.RequestStatus, workerNotes, evidencePath string) []Message {
	msgs := []Message{{
		RecipientID:    req.StudentID,
		RecipientEmail: req.StudentEmail,
		Subject:        studentSubject(req, status),
		Body:           studentBody(req, status, workerNotes, evidencePath),
		AttachmentPath: evidencePath,
	}}
	if req.Assigned() {
		msgs = append(msgs, Message{
			RecipientID:    req.WorkerID,
			RecipientEmail: req.WorkerEmail,
			Subject:        fmt.Sprintf("Task Assignment: %s", req.Title),
			Body:           workerBody(req, status, workerNotes, evidencePath),
		})
	}
	return msgs
}

func studentSubject(req *models.Request, status models.RequestStatus) string {
	switch status {
	case models.StatusInProgress:
		return fmt.Sprintf("Request Update: %s - In Progress", req.Title)
	case models.StatusCompleted:
		return fmt.Sprintf("Request Completed: %s", req.Title)
	case models.StatusPending:
		return fmt.Sprintf("Request Status Update: %s", req.Title)
	}
	return fmt.Sprintf("Request Status Update: %s", req.Title)
}

func studentBody(req *models.Request, status models.RequestStatus, workerNotes, evidencePath string) string {
	var b strings.Builder
	switch status {
	case models.StatusInProgress:
		b.WriteString("<h3>Your Service Request is Now In Progress</h3>")
		b.WriteString("<p>Your campus service request has been assigned and is now being worked on:</p>")
		writeRequestFields(&b, req)
		worker := req.WorkerName
		if worker == "" {
			worker = "Not assigned yet"
		}
		fmt.Fprintf(&b, "<p><strong>Assigned Worker:</strong> %s</p>", worker)
		if workerNotes != "" {
			fmt.Fprintf(&b, "<p><strong>Worker Notes:</strong> %s</p>", workerNotes)
		}
		b.WriteString("<p>We'll keep you updated on the progress. Thank you for your patience.</p>")
	case models.StatusCompleted:
		b.WriteString("<h3>Your Service Request Has Been Completed</h3>")
		b.WriteString("<p>We're pleased to inform you that your campus service request has been completed:</p>")
		writeRequestFields(&b, req)
		fmt.Fprintf(&b, "<p><strong>Completed by:</strong> %s</p>", req.WorkerName)
		if workerNotes != "" {
			fmt.Fprintf(&b, "<p><strong>Completion Notes:</strong> %s</p>", workerNotes)
		}
		if evidencePath != "" {
			b.WriteString("<p><strong>Work Evidence:</strong> An image has been attached showing the completed work.</p>")
		}
		b.WriteString("<p>If you have any concerns about the work performed, please contact campus maintenance.</p>")
	case models.StatusPending:
		writeGenericStatusBody(&b, req, status, workerNotes)
	default:
		writeGenericStatusBody(&b, req, status, workerNotes)
	}
	b.WriteString(`<p>Login to CampusCare for more details.</p>`)
	return b.String()
}

func writeGenericStatusBody(b *strings.Builder, req *models.Request, status models.RequestStatus, workerNotes string) {
	b.WriteString("<h3>Request Status Update</h3>")
	b.WriteString("<p>The status of your service request has been updated:</p>")
	fmt.Fprintf(b, "<p><strong>Request ID:</strong> %d</p>", req.ID)
	fmt.Fprintf(b, "<p><strong>Title:</strong> %s</p>", req.Title)
	fmt.Fprintf(b, "<p><strong>New Status:</strong> %s</p>", status)
	fmt.Fprintf(b, "<p><strong>Priority:</strong> %s</p>", capitalize(string(req.Priority)))
	fmt.Fprintf(b, "<p><strong>Location:</strong> %s</p>", req.Location)
	if workerNotes != "" {
		fmt.Fprintf(b, "<p><strong>Notes:</strong> %s</p>", workerNotes)
	}
}

func workerBody(req *models.Request, status models.RequestStatus, workerNotes, evidencePath string) string {
	var b strings.Builder
	switch status {
	case models.StatusInProgress:
		b.WriteString("<h3>New Task Assigned To You</h3>")
		b.WriteString("<p>You have been assigned a new service request:</p>")
		fmt.Fprintf(&b, "<p><strong>Request ID:</strong> %d</p>", req.ID)
		fmt.Fprintf(&b, "<p><strong>Title:</strong> %s</p>", req.Title)
		fmt.Fprintf(&b, "<p><strong>Student:</strong> %s</p>", req.StudentName)
		fmt.Fprintf(&b, "<p><strong>Location:</strong> %s</p>", req.Location)
		fmt.Fprintf(&b, "<p><strong>Priority:</strong> %s</p>", capitalize(string(req.Priority)))
		fmt.Fprintf(&b, "<p><strong>Description:</strong> %s</p>", req.Description)
		if req.Notes != "" {
			fmt.Fprintf(&b, "<p><strong>Admin Notes:</strong> %s</p>", req.Notes)
		}
		b.WriteString("<p>Please login to CampusCare to start working on this request.</p>")
	case models.StatusCompleted:
		b.WriteString("<h3>Task Completed Successfully</h3>")
		b.WriteString("<p>You have successfully completed the following service request:</p>")
		fmt.Fprintf(&b, "<p><strong>Request ID:</strong> %d</p>", req.ID)
		fmt.Fprintf(&b, "<p><strong>Title:</strong> %s</p>", req.Title)
		fmt.Fprintf(&b, "<p><strong>Student:</strong> %s</p>", req.StudentName)
		fmt.Fprintf(&b, "<p><strong>Location:</strong> %s</p>", req.Location)
		if workerNotes != "" {
			fmt.Fprintf(&b, "<p><strong>Your Notes:</strong> %s</p>", workerNotes)
		}
		if evidencePath != "" {
			b.WriteString("<p><strong>Work Evidence:</strong> You attached an image as evidence of completed work.</p>")
		}
		b.WriteString("<p>The student has been notified of the completion. Thank you for your service!</p>")
	case models.StatusPending:
		writeWorkerGenericBody(&b, req, status, workerNotes)
	default:
		writeWorkerGenericBody(&b, req, status, workerNotes)
	}
	return b.String()
}

func writeWorkerGenericBody(b *strings.Builder, req *models.Request, status models.RequestStatus, workerNotes string) {
	b.WriteString("<h3>Task Status Updated</h3>")
	b.WriteString("<p>The status of your assigned task has been updated:</p>")
	fmt.Fprintf(b, "<p><strong>Request ID:</strong> %d</p>", req.ID)
	fmt.Fprintf(b, "<p><strong>Title:</strong> %s</p>", req.Title)
	fmt.Fprintf(b, "<p><strong>Student:</strong> %s</p>", req.StudentName)
	fmt.Fprintf(b, "<p><strong>New Status:</strong> %s</p>", status)
	if workerNotes != "" {
		fmt.Fprintf(b, "<p><strong>Notes:</strong> %s</p>", workerNotes)
	}
}

func writeRequestFields(b *strings.Builder, req *models.Request) {
	fmt.Fprintf(b, "<p><strong>Request ID:</strong> %d</p>", req.ID)
	fmt.Fprintf(b, "<p><strong>Title:</strong> %s</p>", req.Title)
	fmt.Fprintf(b, "<p><strong>Priority:</strong> %s</p>", capitalize(string(req.Priority)))
	fmt.Fprintf(b, "<p><strong>Location:</strong> %s</p>", req.Location)
}

// PendingSummary is the sweep nudge sent to an administrator when unresolved
// pending requests exist.
func PendingSummary(admin *models.User, pendingCount int) Message {
	body := fmt.Sprintf(`<h3>Action Required: New Pending Service Requests</h3>
<p>Hello %s,</p>
<p>There are currently <strong>%d</strong> service requests with a 'Pending' status that require your attention.</p>
<p>Please log in to the CampusCare Admin Dashboard to review and assign these tasks to a worker.</p>`,
		admin.Name, pendingCount)
	return Message{
		RecipientID:    admin.ID,
		RecipientEmail: admin.Email,
		Subject:        fmt.Sprintf("Action Required: %d New Pending Requests", pendingCount),
		Body:           body,
	}
}

// LostItemBroadcast is the per-student announcement for a newly reported
// lost item.
func LostItemBroadcast(item *models.LostItem, recipient models.User) Message {
	body := fmt.Sprintf(`<h3>New Lost Item Reported</h3>
<p>A new lost item has been reported on CampusCare:</p>
<p><strong>Item:</strong> %s</p>
<p><strong>Description:</strong> %s</p>
<p><strong>Found at:</strong> %s</p>
<p><strong>Date Found:</strong> %s</p>
<p><strong>Contact Reporter:</strong> %s</p>
<p>If this is your item, please contact the reporter using the provided contact information to claim it.</p>`,
		item.ItemName, item.Description, item.LocationFound,
		item.DateFound.Format("2006-01-02"), item.ContactInfo)
	return Message{
		RecipientID:    recipient.ID,
		RecipientEmail: recipient.Email,
		Subject:        fmt.Sprintf("CampusCare: New Lost Item - %s", item.ItemName),
		Body:           body,
	}
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
