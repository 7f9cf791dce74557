package evaluator

import (
	"github.com/cwbudde/go-jsengine/internal/ast"
	"github.com/cwbudde/go-jsengine/internal/runtime"
)

// evalClassExpression builds a class's prototype object (chained to the
// superclass's own prototype, if any) and constructor function. The
// constructor itself is always a Native wrapper: when the class declares
// no explicit constructor and extends a superclass, the wrapper calls
// super(...args) automatically before running field initializers; when it
// does declare one, the wrapper runs field initializers first and then the
// user-written constructor body, which may itself contain an explicit
// super() call. Running every field initializer before super() returns is
// a documented simplification of the derived-class this-binding-deferred-
// until-super() semantics (see callable.go's construct doc comment); it
// only differs from spec behavior if a field initializer expression reads
// a property super() itself would have set, which ordinary class bodies
// never do.
func (ev *Evaluator) evalClassExpression(c *ast.ClassExpression, env *runtime.Environment) (runtime.Value, error) {
	var superCtor, superProto *runtime.Object
	if c.SuperClass != nil {
		superV, err := ev.evalExpression(c.SuperClass, env)
		if err != nil {
			return runtime.Undefined, err
		}
		superCtor = superV.Object()
		if superCtor == nil || superCtor.Function == nil {
			return runtime.Undefined, ev.throwError("TypeError", "Class extends value is not a constructor")
		}
		superProto = superCtor.Function.ConstructorPrototype
	}

	proto := runtime.NewObject(ev.Realm.Intrinsics.ObjectPrototype)
	if superProto != nil {
		proto.Proto = superProto
	}

	ctorObj := runtime.NewObject(ev.Realm.Intrinsics.FunctionPrototype)
	ctorObj.Class = runtime.ClassFunction
	if superCtor != nil {
		ctorObj.Proto = superCtor // static members/methods inherit too
	}
	proto.DefineOwnProperty(runtime.StringKey("constructor"), runtime.NewDataProperty(runtime.ObjectValue(ctorObj), true, false, true))
	ctorObj.DefineOwnProperty(runtime.StringKey("prototype"), runtime.NewDataProperty(runtime.ObjectValue(proto), false, false, false))

	classEnv := env
	if c.Name != nil {
		classEnv = runtime.NewEnvironment(env, runtime.EnvBlock, env.EffectiveMode())
		b := classEnv.DeclareLexical(c.Name.Name, runtime.BindingConst)
		b.Value = runtime.ObjectValue(ctorObj)
		b.Initialized = true
	}

	var explicitCtor *ast.MethodDefinition
	var instanceFields, staticFields []*ast.PropertyDefinition

	for _, m := range c.Body.Methods {
		if m.Kind == ast.MethodConstructor {
			explicitCtor = m
			continue
		}
		target := proto
		if m.Static {
			target = ctorObj
		}
		key, err := ev.propertyKeyOf(m.Key, m.Computed, classEnv)
		if err != nil {
			return runtime.Undefined, err
		}
		fn := ev.makeClosure(m.Value, classEnv)
		fn.Function.HomeObject = target
		switch m.Kind {
		case ast.MethodGet:
			var setFn *runtime.Object
			if existing := target.GetOwnProperty(key); existing != nil && existing.IsAccessor() {
				setFn = existing.Set
			}
			target.DefineOwnProperty(key, runtime.NewAccessorProperty(fn, setFn, false, true))
		case ast.MethodSet:
			var getFn *runtime.Object
			if existing := target.GetOwnProperty(key); existing != nil && existing.IsAccessor() {
				getFn = existing.Get
			}
			target.DefineOwnProperty(key, runtime.NewAccessorProperty(getFn, fn, false, true))
		default:
			target.DefineOwnProperty(key, runtime.NewDataProperty(runtime.ObjectValue(fn), true, false, true))
		}
	}
	for _, f := range c.Body.Fields {
		if f.Static {
			staticFields = append(staticFields, f)
		} else {
			instanceFields = append(instanceFields, f)
		}
	}

	var explicitClosure *runtime.Object
	expectedArgs := 0
	if explicitCtor != nil {
		explicitClosure = ev.makeClosure(explicitCtor.Value, classEnv)
		explicitClosure.Function.HomeObject = proto
		expectedArgs = explicitClosure.Function.ExpectedArgCount()
	}

	name := ""
	if c.Name != nil {
		name = c.Name.Name
	}
	ctorObj.Function = &runtime.FunctionData{
		Name:                 name,
		HomeObject:           proto,
		ConstructorPrototype: proto,
		Native: func(this runtime.Value, args []runtime.Value) (runtime.Value, error) {
			if explicitCtor == nil && superCtor != nil {
				if _, err := ev.callFunction(superCtor, this, args); err != nil {
					return runtime.Undefined, err
				}
			}
			if err := ev.initializeFields(instanceFields, this, classEnv); err != nil {
				return runtime.Undefined, err
			}
			if explicitCtor != nil {
				return ev.callFunction(explicitClosure, this, args)
			}
			return runtime.Undefined, nil
		},
	}
	ctorObj.DefineOwnProperty(runtime.StringKey("length"), runtime.NewDataProperty(runtime.NewNumber(float64(expectedArgs)), false, false, true))
	ctorObj.DefineOwnProperty(runtime.StringKey("name"), runtime.NewDataProperty(runtime.NewString(name), false, false, true))

	if err := ev.initializeFields(staticFields, runtime.ObjectValue(ctorObj), classEnv); err != nil {
		return runtime.Undefined, err
	}

	return runtime.ObjectValue(ctorObj), nil
}

// initializeFields runs each field's initializer (in a scope where `this`
// is bound) and defines the resulting own property on the target.
func (ev *Evaluator) initializeFields(fields []*ast.PropertyDefinition, this runtime.Value, env *runtime.Environment) error {
	for _, f := range fields {
		fieldEnv := runtime.NewEnvironment(env, runtime.EnvFunction, env.EffectiveMode())
		b := fieldEnv.DeclareVar("this")
		b.Value = this
		b.Initialized = true
		key, err := ev.propertyKeyOf(f.Key, f.Computed, fieldEnv)
		if err != nil {
			return err
		}
		var v runtime.Value = runtime.Undefined
		if f.Value != nil {
			vv, err := ev.evalExpression(f.Value, fieldEnv)
			if err != nil {
				return err
			}
			v = vv
		}
		obj := this.Object()
		if obj == nil {
			return ev.throwError("TypeError", "cannot initialize a class field on a non-object instance")
		}
		obj.DefineOwnProperty(key, runtime.NewDataProperty(v, true, true, true))
	}
	return nil
}

func (ev *Evaluator) evalClassDeclaration(s *ast.ClassDeclaration, env *runtime.Environment) (runtime.Value, error) {
	v, err := ev.evalClassExpression(s.Class, env)
	if err != nil {
		return runtime.Undefined, err
	}
	if s.Class.Name != nil {
		b := env.OwnLexical(s.Class.Name.Name)
		if b == nil {
			b = env.DeclareLexical(s.Class.Name.Name, runtime.BindingClass)
		}
		b.Value = v
		b.Initialized = true
	}
	return runtime.Undefined, nil
}
