package cache

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func joinWithSeparator(parts ...string) string {
	return strings.Join(parts, KeySeparator)
}

func TestDefaultKeySerializer(t *testing.T) {
	serializer := NewDefaultKeySerializer()

	type User struct {
		ID   int
		Name string
		role string
	}

	value := 42

	tests := []struct {
		name      string
		namespace string
		args      []any
		want      string
	}{
		{
			name:      "no args",
			namespace: "List",
			args:      []any{},
			want:      "List",
		},
		{
			name:      "basic types",
			namespace: "Get",
			args:      []any{1, "hello", true, 3.14},
			want:      joinWithSeparator("Get", "1", "hello", "true", "3.14"),
		},
		{
			name:      "nil values",
			namespace: "Get",
			args:      []any{nil, (*int)(nil), ([]int)(nil), (map[string]int)(nil)},
			want:      joinWithSeparator("Get", "nil", "nil", "slice:nil", "map:nil"),
		},
		{
			name:      "pointer is dereferenced",
			namespace: "Get",
			args:      []any{&value},
			want:      joinWithSeparator("Get", "42"),
		},
		{
			name:      "nested slice",
			namespace: "Matrix",
			args:      []any{[][]int{{1, 2}, {3, 4}}},
			want:      joinWithSeparator("Matrix", "slice[2]:{slice[2]:{1,2},slice[2]:{3,4}}"),
		},
		{
			name:      "array",
			namespace: "Pair",
			args:      []any{[2]string{"hello", "world"}},
			want:      joinWithSeparator("Pair", "array[2]:{hello,world}"),
		},
		{
			name:      "map sorted",
			namespace: "Filter",
			args:      []any{map[string]int{"count": 10, "age": 25}},
			want:      joinWithSeparator("Filter", "map[2]:{age=25,count=10}"),
		},
		{
			name:      "struct exported fields only",
			namespace: "User",
			args:      []any{User{ID: 2, Name: "bob", role: "admin"}},
			want:      joinWithSeparator("User", "struct:{ID:2,Name:bob}"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := serializer.SerializeKey(tt.namespace, tt.args...)
			if got != tt.want {
				t.Errorf("SerializeKey() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDefaultKeySerializer_FunctionsAndChannels(t *testing.T) {
	serializer := NewDefaultKeySerializer()

	fn := func() {}
	if serializer.SerializeKey("F", fn) != serializer.SerializeKey("F", fn) {
		t.Error("function serialization should be stable")
	}
	if !strings.HasPrefix(serializer.SerializeKey("F", fn), joinWithSeparator("F", "func:")) {
		t.Error("function serialization should use the func: prefix")
	}

	ch := make(chan int)
	if !strings.HasPrefix(serializer.SerializeKey("C", ch), joinWithSeparator("C", "chan:")) {
		t.Error("channel serialization should use the chan: prefix")
	}
}

func TestDefaultKeySerializer_OpaqueStructs(t *testing.T) {
	serializer := NewDefaultKeySerializer()

	a := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	b := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)

	keyA := serializer.SerializeKey("Day", a)
	if !strings.HasPrefix(keyA, joinWithSeparator("Day", "bin:")) {
		t.Fatalf("expected binary encoding for time.Time, got %s", keyA)
	}
	if keyA != serializer.SerializeKey("Day", a) {
		t.Error("binary encoding should be stable")
	}
	if keyA == serializer.SerializeKey("Day", b) {
		t.Error("distinct times must not share a key")
	}
}

func TestStrictKeySerializer_SerializeFields(t *testing.T) {
	serializer := NewStrictKeySerializer()

	key, err := serializer.SerializeFields("intrinsic", "i5", "2024-01-01")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := `intrinsic::string="i5"::string="2024-01-01"`
	if key != want {
		t.Errorf("SerializeFields() = %s, want %s", key, want)
	}

	if _, err := serializer.SerializeFields("intrinsic", []int{1}); !errors.Is(err, ErrInvalidField) {
		t.Errorf("expected ErrInvalidField for slice, got %v", err)
	}
	if _, err := serializer.SerializeFields("intrinsic", nil); !errors.Is(err, ErrInvalidField) {
		t.Errorf("expected ErrInvalidField for nil, got %v", err)
	}
}

func TestStrictKeySerializer_Injective(t *testing.T) {
	serializer := NewStrictKeySerializer()

	pairs := []struct {
		name string
		a, b []any
	}{
		{"separator inside value", []any{"a::b"}, []any{"a", "b"}},
		{"type differs", []any{1}, []any{"1"}},
		{"width differs", []any{int32(1)}, []any{int64(1)}},
		{"arity differs", []any{"a"}, []any{"a", ""}},
		{"quote inside value", []any{`x"::string="y`}, []any{"x", "y"}},
	}

	for _, p := range pairs {
		t.Run(p.name, func(t *testing.T) {
			ka, errA := serializer.SerializeFields("k", p.a...)
			kb, errB := serializer.SerializeFields("k", p.b...)
			if errA != nil || errB != nil {
				t.Fatalf("unexpected errors: %v, %v", errA, errB)
			}
			if ka == kb {
				t.Errorf("expected distinct keys, both were %s", ka)
			}
		})
	}
}

func BenchmarkDefaultKeySerializer(b *testing.B) {
	serializer := NewDefaultKeySerializer()
	args := []any{1, "benchmark", []int{1, 2, 3}, map[string]int{"test": 1}}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		serializer.SerializeKey("BenchmarkMethod", args...)
	}
}
