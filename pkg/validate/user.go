package validate

import "github.com/google/uuid"

var (
	fieldID       = field{json: "id", proto: "id"}
	fieldUsername = field{json: "username", proto: "username"}
	fieldEmail    = field{json: "email", proto: "email"}
	fieldFullName = field{json: "fullName", proto: "full_name"}
	fieldData     = field{json: "data", proto: "data"}
	fieldSortBy   = field{json: "sortBy", proto: "sort_by"}
	fieldFilter   = field{json: "filter", proto: "filter"}
	fieldPage     = field{json: "page", proto: "page"}
	fieldPageSize = field{json: "pageSize", proto: "page_size"}
)

// EntityID validates a path or message id field and parses it.
func EntityID(id string, st Style) (uuid.UUID, Violations) {
	c := &collector{st: st}
	if v, ok := c.requireString(fieldID, &id); ok {
		if parsed, ok := c.uuidV4(fieldID, v); ok {
			return parsed, nil
		}
	}
	return uuid.Nil, c.out
}

type CreateUserInput struct {
	Username *string
	Email    *string
	FullName *string
}

func CreateUser(in CreateUserInput, st Style) Violations {
	c := &collector{st: st}
	if v, ok := c.requireString(fieldUsername, in.Username); ok {
		c.strLen(fieldUsername, v, 3, 50)
	}
	if v, ok := c.requireString(fieldEmail, in.Email); ok {
		c.email(fieldEmail, v)
	}
	if v, ok := c.requireString(fieldFullName, in.FullName); ok {
		c.strLen(fieldFullName, v, 0, 100)
	}
	return c.out
}

// UpdateUserData is the nested patch payload. Nil fields are absent and skip
// their constraints entirely.
type UpdateUserData struct {
	Username *string
	Email    *string
	FullName *string
	IsActive *bool
}

type UpdateUserInput struct {
	ID   string
	Data *UpdateUserData
}

// UpdateUser validates the id and the nested data payload. In ProtoNames
// style nested violations are flattened under a "data." path prefix, matching
// the gRPC message shape; the REST body is the data object itself, so no
// prefix applies there.
func UpdateUser(in UpdateUserInput, st Style) (uuid.UUID, Violations) {
	c := &collector{st: st}
	id, idOK := uuid.Nil, false
	if v, ok := c.requireString(fieldID, &in.ID); ok {
		id, idOK = c.uuidV4(fieldID, v)
	}

	if in.Data == nil {
		c.add(fieldData, "is required")
		return uuid.Nil, c.out
	}

	nested := &collector{st: st}
	if st == ProtoNames {
		nested.prefix = "data."
	}
	if in.Data.Username != nil {
		nested.strLen(fieldUsername, *in.Data.Username, 3, 50)
	}
	if in.Data.Email != nil {
		nested.email(fieldEmail, *in.Data.Email)
	}
	if in.Data.FullName != nil {
		nested.strLen(fieldFullName, *in.Data.FullName, 0, 100)
	}
	c.out = append(c.out, nested.out...)

	if !idOK || len(c.out) > 0 {
		return uuid.Nil, c.out
	}
	return id, nil
}

type ListUsersInput struct {
	SortBy   *string
	Filter   *string
	Page     *int64
	PageSize *int64
}

func ListUsers(in ListUsersInput, st Style) Violations {
	c := &collector{st: st}
	if in.SortBy != nil {
		c.strLen(fieldSortBy, *in.SortBy, 0, 100)
	}
	if in.Filter != nil {
		c.strLen(fieldFilter, *in.Filter, 0, 100)
	}
	c.pagination(in.Page, in.PageSize)
	return c.out
}

func (c *collector) pagination(page, pageSize *int64) {
	if page == nil {
		c.add(fieldPage, "is required")
	} else {
		c.intRange(fieldPage, *page, 1, 10000,
			"must be at least 1", "must be at most 10000")
	}
	if pageSize == nil {
		c.add(fieldPageSize, "is required")
	} else {
		c.intRange(fieldPageSize, *pageSize, 1, 100,
			"must be at least 1", "must be at most 100")
	}
}
