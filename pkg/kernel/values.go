package kernel

type Email string

func (e Email) String() string { return string(e) }
func (e Email) IsEmpty() bool  { return string(e) == "" }

// Role distinguishes the two account types of the board
type Role string

const (
	RoleStudent   Role = "student"
	RoleRecruiter Role = "recruiter"
)

// IsValid reports whether the role is one of the known account types
func (r Role) IsValid() bool {
	return r == RoleStudent || r == RoleRecruiter
}

func (r Role) String() string { return string(r) }

type BucketURL string

func (b BucketURL) String() string { return string(b) }
func (b BucketURL) IsEmpty() bool  { return string(b) == "" }
