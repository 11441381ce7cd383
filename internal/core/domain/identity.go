package domain

type identityKind int

const (
	identityEmail identityKind = iota + 1
	identityPhone
)

// Identity is the email address or phone number used to look up a user.
// It is a tagged value rather than two nullable fields so the
// "email XOR phone" rule is decided once, at construction.
type Identity struct {
	kind  identityKind
	value string
}

func EmailIdentity(email string) Identity {
	return Identity{kind: identityEmail, value: email}
}

func PhoneIdentity(phone string) Identity {
	return Identity{kind: identityPhone, value: phone}
}

// NewIdentity picks an identity from the optional email/phone pair, preferring
// email when both are present. ok is false when neither is given.
func NewIdentity(email, phone string) (id Identity, ok bool) {
	switch {
	case email != "":
		return EmailIdentity(email), true
	case phone != "":
		return PhoneIdentity(phone), true
	default:
		return Identity{}, false
	}
}

func (i Identity) IsEmail() bool { return i.kind == identityEmail }
func (i Identity) IsPhone() bool { return i.kind == identityPhone }
func (i Identity) IsZero() bool  { return i.kind == 0 }
func (i Identity) Value() string { return i.value }
