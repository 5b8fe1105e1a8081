package store

import "time"

// Event is a ticketed event owned by an organization.
type Event struct {
	ID             string    `firestore:"id" json:"id"`
	OrganizationID string    `firestore:"organizationId" json:"organizationId"`
	Name           string    `firestore:"name" json:"name"`
	Description    string    `firestore:"description" json:"description"`
	Venue          string    `firestore:"venue" json:"venue"`
	StartDate      string    `firestore:"startDate" json:"startDate"`
	EndDate        string    `firestore:"endDate" json:"endDate"`
	Published      bool      `firestore:"published" json:"published"`
	CreatedBy      string    `firestore:"createdBy" json:"createdBy"`
	CreatedAt      time.Time `firestore:"createdAt" json:"createdAt"`
	UpdatedAt      time.Time `firestore:"updatedAt" json:"updatedAt"`
}

// Access rules for a ticket type.
const (
	AccessPublic  = "public"
	AccessMembers = "members"
	AccessInvite  = "invite"
)

// TicketType is a purchasable tier of an event.
type TicketType struct {
	ID          string    `firestore:"id" json:"id"`
	EventID     string    `firestore:"eventId" json:"eventId"`
	Name        string    `firestore:"name" json:"name"`
	Description string    `firestore:"description" json:"description"`
	Price       float64   `firestore:"price" json:"price"`
	Quantity    int       `firestore:"quantity" json:"quantity"`
	Issued      int       `firestore:"issued" json:"issued"`
	AccessRule  string    `firestore:"accessRule" json:"accessRule"`
	SaleStart   string    `firestore:"saleStart" json:"saleStart"`
	SaleEnd     string    `firestore:"saleEnd" json:"saleEnd"`
	CreatedAt   time.Time `firestore:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time `firestore:"updatedAt" json:"updatedAt"`
}

// Ticket statuses.
const (
	TicketIssued    = "issued"
	TicketPaid      = "paid"
	TicketCancelled = "cancelled"
)

// Ticket is a single issued ticket. Older documents carried the amount
// under different field names, so all three are kept and coalesced at
// read time.
type Ticket struct {
	ID             string     `firestore:"id" json:"id"`
	EventID        string     `firestore:"eventId" json:"eventId"`
	TicketTypeID   string     `firestore:"ticketTypeId" json:"ticketTypeId"`
	OrganizationID string     `firestore:"organizationId" json:"organizationId"`
	HolderID       string     `firestore:"holderId" json:"holderId"`
	HolderEmail    string     `firestore:"holderEmail" json:"holderEmail"`
	Status         string     `firestore:"status" json:"status"`
	Amount         *float64   `firestore:"amount" json:"amount,omitempty"`
	Price          *float64   `firestore:"price" json:"price,omitempty"`
	AmountCents    *int64     `firestore:"amountCents" json:"amountCents,omitempty"`
	ChargeID       string     `firestore:"chargeId" json:"chargeId,omitempty"`
	PaidAt         *time.Time `firestore:"paidAt" json:"paidAt,omitempty"`
	CreatedAt      time.Time  `firestore:"createdAt" json:"createdAt"`
}

// Member roles within an organization.
const (
	RoleOwner  = "owner"
	RoleAdmin  = "admin"
	RoleMember = "member"
)

// Organization groups events and a member roster.
type Organization struct {
	ID            string    `firestore:"id" json:"id"`
	Name          string    `firestore:"name" json:"name"`
	Description   string    `firestore:"description" json:"description"`
	Avatar        string    `firestore:"avatar" json:"avatar,omitempty"`
	OwnerID       string    `firestore:"ownerId" json:"ownerId"`
	MemberIDs     []string  `firestore:"memberIds" json:"memberIds"`
	LastSynced    string    `firestore:"lastSynced" json:"lastSynced,omitempty"`
	LastRequested string    `firestore:"lastRequested" json:"lastRequested,omitempty"`
	CreatedAt     time.Time `firestore:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time `firestore:"updatedAt" json:"updatedAt"`
}

// Member is one roster entry, stored under the organization with the
// user's uid as document ID.
type Member struct {
	UserID  string    `firestore:"userId" json:"userId"`
	Email   string    `firestore:"email" json:"email"`
	Name    string    `firestore:"name" json:"name"`
	Role    string    `firestore:"role" json:"role"`
	AddedAt time.Time `firestore:"addedAt" json:"addedAt"`
}

// Invite statuses.
const (
	InvitePending  = "pending"
	InviteAccepted = "accepted"
	InviteDeclined = "declined"
	InviteExpired  = "expired"
)

// Invite is an emailed invitation to join an organization.
type Invite struct {
	ID             string    `firestore:"id" json:"id"`
	OrganizationID string    `firestore:"organizationId" json:"organizationId"`
	Email          string    `firestore:"email" json:"email"`
	Role           string    `firestore:"role" json:"role"`
	InviterID      string    `firestore:"inviterId" json:"inviterId"`
	Status         string    `firestore:"status" json:"status"`
	ExpiresAt      time.Time `firestore:"expiresAt" json:"expiresAt"`
	CreatedAt      time.Time `firestore:"createdAt" json:"createdAt"`
}

// FriendRequest statuses reuse the invite constants.

// FriendRequest is a pending friendship between two users.
type FriendRequest struct {
	ID        string    `firestore:"id" json:"id"`
	FromID    string    `firestore:"fromId" json:"fromId"`
	FromName  string    `firestore:"fromName" json:"fromName"`
	FromEmail string    `firestore:"fromEmail" json:"fromEmail"`
	ToID      string    `firestore:"toId" json:"toId"`
	ToEmail   string    `firestore:"toEmail" json:"toEmail"`
	Status    string    `firestore:"status" json:"status"`
	CreatedAt time.Time `firestore:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `firestore:"updatedAt" json:"updatedAt"`
}

// Friendship is a single edge document whose ID is the sorted user-ID
// pair, which makes the uniqueness constraint a document ID instead of a
// query.
type Friendship struct {
	ID         string    `firestore:"id" json:"id"`
	UserIDs    []string  `firestore:"userIds" json:"userIds"`
	UserAID    string    `firestore:"userAId" json:"userAId"`
	UserAName  string    `firestore:"userAName" json:"userAName"`
	UserAEmail string    `firestore:"userAEmail" json:"userAEmail"`
	UserBID    string    `firestore:"userBId" json:"userBId"`
	UserBName  string    `firestore:"userBName" json:"userBName"`
	UserBEmail string    `firestore:"userBEmail" json:"userBEmail"`
	CreatedAt  time.Time `firestore:"createdAt" json:"createdAt"`
}

// PairKey returns the canonical friendship document ID for two user IDs.
func PairKey(a, b string) string {
	if b < a {
		a, b = b, a
	}
	return a + "_" + b
}
