package person

import (
	"context"
	"sort"
	"testing"

	"github.com/officetrack/officetrack-backend-go/internal/domain/person"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePersonRepo struct {
	people map[int64]person.Person
}

func newFakePersonRepo(people ...person.Person) *fakePersonRepo {
	f := &fakePersonRepo{people: map[int64]person.Person{}}
	for _, p := range people {
		f.people[p.ExternalUserID] = p
	}
	return f
}

func (f *fakePersonRepo) Create(_ context.Context, p person.Person) (int64, error) {
	p.ID = int64(len(f.people) + 1)
	f.people[p.ExternalUserID] = p
	return p.ID, nil
}

func (f *fakePersonRepo) GetByExternalID(_ context.Context, id int64) (person.Person, error) {
	p, ok := f.people[id]
	if !ok {
		return person.Person{}, person.ErrPersonNotFound
	}
	return p, nil
}

func (f *fakePersonRepo) UpdateFullName(_ context.Context, id int64, name string) error {
	p, ok := f.people[id]
	if !ok {
		return person.ErrPersonNotFound
	}
	p.FullName = name
	f.people[id] = p
	return nil
}

func (f *fakePersonRepo) List(_ context.Context) ([]person.Person, error) {
	var out []person.Person
	for _, p := range f.people {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].FullName < out[j].FullName })
	return out, nil
}

func TestPersonService_List(t *testing.T) {
	repo := newFakePersonRepo(
		person.Person{ExternalUserID: 2, FullName: "Bob"},
		person.Person{ExternalUserID: 1, FullName: "Alice"},
	)
	svc := NewPersonService(repo)

	people, err := svc.List(context.Background())

	require.NoError(t, err)
	require.Len(t, people, 2)
	assert.Equal(t, "Alice", people[0].FullName)
	assert.Equal(t, "Bob", people[1].FullName)
}

func TestPersonService_Get_UnknownUser(t *testing.T) {
	svc := NewPersonService(newFakePersonRepo())

	_, err := svc.Get(context.Background(), 99)

	assert.ErrorIs(t, err, person.ErrPersonNotFound)
}

func TestPersonService_Rename(t *testing.T) {
	repo := newFakePersonRepo(person.Person{ExternalUserID: 42, FullName: "Old Name"})
	svc := NewPersonService(repo)
	ctx := context.Background()

	err := svc.Rename(ctx, 42, "New Name")

	require.NoError(t, err)
	p, err := svc.Get(ctx, 42)
	require.NoError(t, err)
	assert.Equal(t, "New Name", p.FullName)
}

func TestPersonService_Rename_UnknownUser(t *testing.T) {
	svc := NewPersonService(newFakePersonRepo())

	err := svc.Rename(context.Background(), 99, "New Name")

	assert.ErrorIs(t, err, person.ErrPersonNotFound)
}
