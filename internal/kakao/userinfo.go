package kakao

// UserInfo is the normalized view of a Kakao profile response. All knowledge
// of the provider's nested field paths lives here; supporting another
// provider only requires another normalizer.
type UserInfo struct {
	Email           string
	Nickname        string
	ProfileImageURL string

	// Attributes holds the raw provider response for callers that need
	// fields the normalizer does not extract.
	Attributes map[string]interface{}
}

// NewUserInfo extracts the normalized profile fields from the raw Kakao
// response attributes. Fields missing from the response stay empty.
func NewUserInfo(attributes map[string]interface{}) *UserInfo {
	info := &UserInfo{Attributes: attributes}

	if account, ok := attributes["kakao_account"].(map[string]interface{}); ok {
		if email, ok := account["email"].(string); ok {
			info.Email = email
		}
	}

	if properties, ok := attributes["properties"].(map[string]interface{}); ok {
		if nickname, ok := properties["nickname"].(string); ok {
			info.Nickname = nickname
		}
		if image, ok := properties["profile_image"].(string); ok {
			info.ProfileImageURL = image
		}
	}

	return info
}
