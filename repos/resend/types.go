package resend

// Define the structure for your JSON payload
type InviteRequest struct {
	OrganizationID   string `json:"organizationId"`
	OrganizationName string `json:"organizationName"`
	Email            string `json:"email"`
	Role             string `json:"role"`
}

// FriendNotice is what the friend-request notification needs.
type FriendNotice struct {
	ToEmail  string `json:"toEmail"`
	FromName string `json:"fromName"`
}
